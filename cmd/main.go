package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/podx/internal/repositories"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/session"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("ignoring unreadable config.toml: %v", err)
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	manager := session.NewManager(repositories.NewCredentialRepository(db), logger)
	manager.Restore()

	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Portal:     services.NewPortalService(config.API.BaseURL, httpClient, manager),
		Live:       services.NewLiveService(config.API.BaseURL, httpClient, manager),
		Admin:      services.NewAdminService(config.API.BaseURL, httpClient, manager),
		API:        services.NewAPIService(config.API.BaseURL, httpClient, manager),
		Session:    manager,
		History:    repositories.NewHistoryRepository(db),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "podx",
		Usage:    "Browse and play episodes from the podcast portal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8000" {
			t.Errorf("expected base URL http://localhost:8000, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "./podx.db" {
			t.Errorf("expected database path ./podx.db, got %s", config.Database.Path)
		}

		if config.Player.Volume != 0.8 {
			t.Errorf("expected player volume 0.8, got %f", config.Player.Volume)
		}

		if config.API.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30s, got %d", config.API.TimeoutSeconds)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://portal.example.edu"
timeout_seconds = 10

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[player]
volume = 0.4
command = "ffplay"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://portal.example.edu" {
			t.Errorf("expected base URL https://portal.example.edu, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Player.Command != "ffplay" {
			t.Errorf("expected player command ffplay, got %s", config.Player.Command)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

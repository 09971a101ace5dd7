package main

import (
	"context"
	"errors"

	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Health checks portal and database availability and prints the labels shown
// in the TUI status bar. A non-2xx response surfaces the status code; a
// transport failure prints Offline.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking portal health")

	health, err := r.portal.Health(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrServiceUnavailable) {
			r.writePlain("Backend: Offline\n")
		} else {
			r.writePlain("Backend: %v\n", err)
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(health, true)
	}

	r.writePlain("Backend: %s\n", health.BackendLabel())
	r.writePlain("Database: %s\n", health.DatabaseLabel())
	return nil
}

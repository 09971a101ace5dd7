package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the portal
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	useJSON := cmd.Bool("json")

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if useJSON {
		if resp.IsJSON {
			return r.writeJSON(resp.JSONData, false)
		}
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
		return nil
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIPost makes a direct POST request to the portal
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	r.logger.Info("POST request", "path", path)

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIDump fetches and displays the full portal state.
func (r *Runner) APIDump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")

	r.logger.Info("dumping portal state")
	r.writePlain("Fetching portal state...\n\n")

	type DumpData struct {
		Health   any   `json:"health"`
		Podcasts any   `json:"podcasts,omitempty"`
		Streams  any   `json:"streams,omitempty"`
		Me       any   `json:"me,omitempty"`
		Errors   []any `json:"errors,omitempty"`
	}

	dump := DumpData{
		Errors: []any{},
	}

	fetch := func(endpoint, label string, into *any) {
		r.writePlain("Fetching %s...\n", label)
		resp, err := r.api.Get(ctx, endpoint)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			*into = resp.JSONData
			return
		}
		detail := "unexpected status"
		if err != nil {
			detail = err.Error()
		}
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": endpoint, "error": detail})
		r.logger.Warn("failed to fetch", "endpoint", endpoint, "error", detail)
	}

	fetch("/api/health", "health status", &dump.Health)
	fetch("/api/podcasts/", "podcasts", &dump.Podcasts)
	fetch("/api/live/", "live streams", &dump.Streams)
	fetch("/api/auth/me", "current account", &dump.Me)

	r.writePlainln("✓ Dump complete")

	return r.writeJSON(dump, pretty)
}

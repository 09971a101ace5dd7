package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/shared"
	tu "github.com/desertthunder/podx/internal/testing"
	"github.com/urfave/cli/v3"
)

func runHealth(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "podx",
		Commands: []*cli.Command{healthCommand(r)},
	}
	return app.Run(context.Background(), append([]string{"podx"}, args...))
}

func newHealthRunner(baseURL string, output *bytes.Buffer) *Runner {
	portal := services.NewPortalService(baseURL, http.DefaultClient, &tu.StaticTokenSource{})
	return NewRunner(RunnerOpts{Portal: portal, Output: output})
}

func TestHealth(t *testing.T) {
	t.Run("prints labels for a healthy portal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "healthy", "database": "connected"}`))
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newHealthRunner(server.URL, output)

		if err := runHealth(t, runner, "health"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := output.String(); got != "Backend: Online\nDatabase: Connected\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("surfaces the status code on a non-2xx response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail": "database unavailable"}`))
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newHealthRunner(server.URL, output)

		err := runHealth(t, runner, "health")
		if err == nil {
			t.Fatal("expected error for 503 response")
		}
		if !strings.Contains(err.Error(), "503") {
			t.Errorf("expected status code in error, got %q", err.Error())
		}
		if got := output.String(); !strings.Contains(got, "503") {
			t.Errorf("expected status code in output, got %q", got)
		}
		if strings.Contains(output.String(), "Offline") {
			t.Errorf("503 is not a transport failure, got %q", output.String())
		}
	})

	t.Run("prints Offline when the portal is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		output := &bytes.Buffer{}
		runner := newHealthRunner(server.URL, output)

		err := runHealth(t, runner, "health")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
		if got := output.String(); got != "Backend: Offline\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("emits raw payload with --json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "healthy", "database": "connected"}`))
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newHealthRunner(server.URL, output)

		if err := runHealth(t, runner, "health", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := output.String(); !strings.Contains(got, `"status": "healthy"`) {
			t.Errorf("expected JSON payload, got %q", got)
		}
	})
}

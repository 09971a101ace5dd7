package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
	tu "github.com/desertthunder/podx/internal/testing"
)

func authedLive(serverURL string) *LiveService {
	tokens := &tu.StaticTokenSource{TokenValue: "test-token", Present: true}
	return NewLiveService(serverURL, nil, tokens)
}

func TestLiveService(t *testing.T) {
	t.Run("Streams", func(t *testing.T) {
		t.Run("Without Filter", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/live/" {
					t.Errorf("expected path '/api/live/', got %s", r.URL.Path)
				}
				if r.URL.Query().Get("status") != "" {
					t.Errorf("expected no status filter, got %q", r.URL.Query().Get("status"))
				}
				json.NewEncoder(w).Encode([]models.LiveStream{
					{ID: 1, Title: "Algorithms", Status: models.StreamLive},
					{ID: 2, Title: "Databases", Status: models.StreamOffline},
				})
			}))
			defer server.Close()

			streams, err := authedLive(server.URL).Streams(context.Background(), "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(streams) != 2 {
				t.Fatalf("expected 2 streams, got %d", len(streams))
			}
			if !streams[0].IsLive() || streams[1].IsLive() {
				t.Errorf("unexpected live flags: %+v", streams)
			}
		})

		t.Run("With Status Filter", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("status") != "live" {
					t.Errorf("expected status filter 'live', got %q", r.URL.Query().Get("status"))
				}
				json.NewEncoder(w).Encode([]models.LiveStream{})
			}))
			defer server.Close()

			if _, err := authedLive(server.URL).Streams(context.Background(), models.StreamLive); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Start", func(t *testing.T) {
		t.Run("Defaults Status To Live", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				body, _ := io.ReadAll(r.Body)
				var req StartRequest
				if err := json.Unmarshal(body, &req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if req.Status != models.StreamLive {
					t.Errorf("expected status 'live', got %q", req.Status)
				}
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(models.LiveStream{ID: 5, Title: req.Title, Status: req.Status})
			}))
			defer server.Close()

			stream, err := authedLive(server.URL).Start(context.Background(), StartRequest{Title: "Office Hours"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if stream.ID != 5 || stream.Status != models.StreamLive {
				t.Errorf("unexpected stream: %+v", stream)
			}
		})

		t.Run("Viewer Role Rejected", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Only lecturers and admins can create live streams"})
			}))
			defer server.Close()

			_, err := authedLive(server.URL).Start(context.Background(), StartRequest{Title: "Nope"})
			if !errors.Is(err, shared.ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	})

	t.Run("Stop", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if r.URL.Path != "/api/live/5" {
				t.Errorf("expected path '/api/live/5', got %s", r.URL.Path)
			}
			body, _ := io.ReadAll(r.Body)
			var payload map[string]string
			json.Unmarshal(body, &payload)
			if payload["status"] != models.StreamOffline {
				t.Errorf("expected status 'offline', got %q", payload["status"])
			}
			json.NewEncoder(w).Encode(models.LiveStream{ID: 5, Status: models.StreamOffline})
		}))
		defer server.Close()

		stream, err := authedLive(server.URL).Stop(context.Background(), 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stream.IsLive() {
			t.Error("expected stream to be offline")
		}
	})

	t.Run("Join and Leave", func(t *testing.T) {
		var paths []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			paths = append(paths, r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))
		defer server.Close()

		srv := authedLive(server.URL)
		if err := srv.Join(context.Background(), 3); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if err := srv.Leave(context.Background(), 3); err != nil {
			t.Fatalf("leave failed: %v", err)
		}

		if len(paths) != 2 || paths[0] != "/api/live/3/join" || paths[1] != "/api/live/3/leave" {
			t.Errorf("unexpected paths: %v", paths)
		}
	})

	t.Run("Missing Stream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Live stream not found"})
		}))
		defer server.Close()

		_, err := authedLive(server.URL).Stream(context.Background(), 404)
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

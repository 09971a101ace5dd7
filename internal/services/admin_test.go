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

func authedAdmin(serverURL string) *AdminService {
	tokens := &tu.StaticTokenSource{TokenValue: "admin-token", Present: true}
	return NewAdminService(serverURL, nil, tokens)
}

func TestAdminService(t *testing.T) {
	t.Run("Users", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/admin/users" {
				t.Errorf("expected path '/api/admin/users', got %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer admin-token" {
				t.Errorf("expected bearer header, got %q", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode([]models.User{
				{ID: 1, Username: "admin", Role: models.RoleAdmin, IsAdmin: true},
				{ID: 2, Username: "student", Role: models.RoleUser},
			})
		}))
		defer server.Close()

		users, err := authedAdmin(server.URL).Users(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
	})

	t.Run("UpdateUser", func(t *testing.T) {
		t.Run("Sends Only Set Fields", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("expected PUT, got %s", r.Method)
				}
				if r.URL.Path != "/api/admin/users/2" {
					t.Errorf("expected path '/api/admin/users/2', got %s", r.URL.Path)
				}
				body, _ := io.ReadAll(r.Body)
				var payload map[string]any
				if err := json.Unmarshal(body, &payload); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if payload["role"] != models.RoleLecturer {
					t.Errorf("expected role 'lecturer', got %v", payload["role"])
				}
				if _, present := payload["email"]; present {
					t.Error("expected unset email to be omitted")
				}
				json.NewEncoder(w).Encode(models.User{ID: 2, Username: "student", Role: models.RoleLecturer})
			}))
			defer server.Close()

			role := models.RoleLecturer
			user, err := authedAdmin(server.URL).UpdateUser(context.Background(), 2, UserUpdate{Role: &role})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.Role != models.RoleLecturer {
				t.Errorf("expected updated role, got %q", user.Role)
			}
		})

		t.Run("Non-Admin Rejected", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Admin access required"})
			}))
			defer server.Close()

			active := false
			_, err := authedAdmin(server.URL).UpdateUser(context.Background(), 2, UserUpdate{IsActive: &active})
			if !errors.Is(err, shared.ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	})

	t.Run("DeleteUser", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			if r.URL.Path != "/api/admin/users/9" {
				t.Errorf("expected path '/api/admin/users/9', got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "User deleted"})
		}))
		defer server.Close()

		if err := authedAdmin(server.URL).DeleteUser(context.Background(), 9); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Podcast Moderation", func(t *testing.T) {
		var requests []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, r.Method+" "+r.URL.Path)
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]models.Podcast{{ID: 1, Title: "Lecture"}})
			default:
				json.NewEncoder(w).Encode(map[string]string{"message": "Podcast deleted"})
			}
		}))
		defer server.Close()

		srv := authedAdmin(server.URL)
		if _, err := srv.Podcasts(context.Background()); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if err := srv.DeletePodcast(context.Background(), 1); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		want := []string{"GET /api/admin/podcasts", "DELETE /api/admin/podcasts/1"}
		for i, path := range want {
			if requests[i] != path {
				t.Errorf("expected request %q, got %q", path, requests[i])
			}
		}
	})

	t.Run("UpdateStreamStatus", func(t *testing.T) {
		t.Run("Passes Status As Query Parameter", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("expected PUT, got %s", r.Method)
				}
				if r.URL.Path != "/api/admin/live-streams/4/status" {
					t.Errorf("expected status path, got %s", r.URL.Path)
				}
				if r.URL.Query().Get("status_update") != "offline" {
					t.Errorf("expected status_update 'offline', got %q", r.URL.Query().Get("status_update"))
				}
				json.NewEncoder(w).Encode(models.LiveStream{ID: 4, Status: models.StreamOffline})
			}))
			defer server.Close()

			stream, err := authedAdmin(server.URL).UpdateStreamStatus(context.Background(), 4, models.StreamOffline)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if stream.Status != models.StreamOffline {
				t.Errorf("expected offline stream, got %q", stream.Status)
			}
		})

		t.Run("Invalid Status Rejected By Portal", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid status"})
			}))
			defer server.Close()

			_, err := authedAdmin(server.URL).UpdateStreamStatus(context.Background(), 4, "bogus")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("DeleteStream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			if r.URL.Path != "/api/admin/live-streams/4" {
				t.Errorf("expected path '/api/admin/live-streams/4', got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "Live stream deleted"})
		}))
		defer server.Close()

		if err := authedAdmin(server.URL).DeleteStream(context.Background(), 4); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/session"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// memStore is an in-memory CredentialStore for tests.
type memStore struct{ token string }

func (s *memStore) Save(token string) error { s.token = token; return nil }
func (s *memStore) Load() (string, error)   { return s.token, nil }
func (s *memStore) Clear() error            { s.token = ""; return nil }

func signedToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       "alice",
		"user_id":   7,
		"email":     "alice@example.edu",
		"role":      models.RoleUser,
		"is_active": true,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authedModel(t *testing.T) *Model {
	t.Helper()
	manager := session.NewManager(&memStore{token: signedToken(t)}, nil)
	manager.Restore()
	return NewModel(ModelOpts{Session: manager})
}

func TestDashboardHealth(t *testing.T) {
	t.Run("renders labels for a healthy portal", func(t *testing.T) {
		m := authedModel(t)
		m.Update(healthFetchedMsg{health: &models.Health{Status: "healthy", Database: "connected"}})

		view := m.View()
		if !strings.Contains(view, "Online") {
			t.Errorf("expected Online in view, got %q", view)
		}
		if !strings.Contains(view, "Connected") {
			t.Errorf("expected Connected in view, got %q", view)
		}
	})

	t.Run("surfaces the status code on a non-2xx response", func(t *testing.T) {
		m := authedModel(t)
		m.Update(healthFetchedMsg{err: fmt.Errorf("%w: status 503", shared.ErrAPIRequest)})

		view := m.View()
		if !strings.Contains(view, "503") {
			t.Errorf("expected status code in view, got %q", view)
		}
		if strings.Contains(view, "Offline") {
			t.Errorf("503 is not a transport failure, got %q", view)
		}
	})

	t.Run("renders Offline when the portal is unreachable", func(t *testing.T) {
		m := authedModel(t)
		m.Update(healthFetchedMsg{err: fmt.Errorf("%w: connection refused", shared.ErrServiceUnavailable)})

		view := m.View()
		if !strings.Contains(view, "Offline") {
			t.Errorf("expected Offline in view, got %q", view)
		}
	})
}

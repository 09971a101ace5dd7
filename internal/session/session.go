package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// CredentialStore persists the raw credential string across process restarts.
//
// Load returns an empty string (and no error) when no credential is stored.
type CredentialStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// Claims is the portal credential payload.
//
// The portal signs tokens server-side; the client never holds the signing key,
// so claims are parsed without signature verification. The credential is still
// the sole source of truth for identity and role during a session.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// Session is the derived, in-memory view over the current credential.
//
// Capability flags are a pure function of the credential's role claim:
// IsAdmin iff role is admin, IsLecturer iff role is lecturer or admin.
type Session struct {
	Authenticated bool
	User          *models.User
	IsAdmin       bool
	IsLecturer    bool
	Loading       bool
}

// ParseCredential decodes a portal token into a User.
//
// A credential that is malformed, has the wrong shape, or is missing the
// subject or role claim is never trusted partially: the whole parse fails.
func ParseCredential(token string) (*models.User, error) {
	claims := &Claims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredential, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", shared.ErrInvalidCredential)
	}

	switch claims.Role {
	case models.RoleUser, models.RoleLecturer, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrInvalidCredential, claims.Role)
	}

	return &models.User{
		ID:       claims.UserID,
		Username: claims.Subject,
		Email:    claims.Email,
		Role:     claims.Role,
		IsActive: claims.IsActive,
		IsAdmin:  claims.Role == models.RoleAdmin,
	}, nil
}

// Manager owns the current credential and the Session derived from it.
//
// Constructed once per run. Only Restore, Login and Logout mutate the session;
// everything else reads a snapshot.
type Manager struct {
	mu     sync.RWMutex
	store  CredentialStore
	logger *log.Logger
	token  string
	sess   Session
}

// NewManager creates a Manager in the loading state. Call Restore before
// evaluating any route guard.
func NewManager(store CredentialStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		store:  store,
		logger: logger,
		sess:   Session{Loading: true},
	}
}

// Restore re-parses a previously persisted credential at startup.
//
// A missing credential leaves the session logged out; a credential that fails
// to parse is discarded from the store. The loading flag is cleared exactly
// once, whatever the outcome.
func (m *Manager) Restore() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.restoreLocked()
	m.sess.Loading = false
	return m.sess
}

func (m *Manager) restoreLocked() {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warnf("failed to load stored credential: %v", err)
		return
	}
	if token == "" {
		return
	}

	user, err := ParseCredential(token)
	if err != nil {
		m.logger.Warnf("discarding stored credential: %v", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warnf("failed to clear credential store: %v", clearErr)
		}
		return
	}

	m.token = token
	m.sess = apply(user)
}

// Login persists and parses a freshly issued credential, and returns the
// landing route: the admin console for admins, the dashboard for everyone
// else. A credential that fails to parse behaves exactly like Logout.
func (m *Manager) Login(token string) (Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(token); err != nil {
		m.logger.Warnf("failed to persist credential: %v", err)
	}

	user, err := ParseCredential(token)
	if err != nil {
		m.logoutLocked()
		return RouteLogin, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	m.token = token
	m.sess = apply(user)

	if user.IsAdmin {
		return RouteAdmin, nil
	}
	return RouteDashboard, nil
}

// Logout clears the persisted credential and every session field. It is
// idempotent: calling it while logged out is safe.
func (m *Manager) Logout() Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutLocked()
	return RouteLogin
}

func (m *Manager) logoutLocked() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warnf("failed to clear credential store: %v", err)
	}
	m.token = ""
	m.sess = Session{}
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess
}

// Token returns the raw credential for Authorization headers, and whether one
// is held.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// Authenticated reports whether a valid credential is held. Used by the
// playback engine to gate play-count telemetry.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.Authenticated
}

func apply(user *models.User) Session {
	return Session{
		Authenticated: true,
		User:          user,
		IsAdmin:       user.IsAdmin,
		IsLecturer:    user.Role == models.RoleLecturer || user.IsAdmin,
	}
}

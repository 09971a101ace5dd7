package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// CredentialRepository persists the raw portal token in a single durable row.
// Implements session.CredentialStore.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a credential repository backed by db.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save stores the credential, replacing any previous one.
func (r *CredentialRepository) Save(token string) error {
	query := `
		INSERT INTO credentials (id, token, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, token, time.Now()); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Load returns the stored credential, or an empty string when none is stored.
func (r *CredentialRepository) Load() (string, error) {
	var token string
	err := r.db.QueryRow("SELECT token FROM credentials WHERE id = 1").Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return token, nil
}

// Clear discards the stored credential. Clearing an empty store is a no-op.
func (r *CredentialRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}


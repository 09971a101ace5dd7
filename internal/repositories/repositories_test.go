package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/podx/internal/shared"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestCredentialRepository(t *testing.T) {
	t.Run("Load From Empty Store", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		token, err := repo.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})

	t.Run("Save Then Load", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Save("token-one"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		token, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if token != "token-one" {
			t.Errorf("expected 'token-one', got %q", token)
		}
	})

	t.Run("Save Replaces Previous Credential", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Save("token-one"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := repo.Save("token-two"); err != nil {
			t.Fatalf("failed to save replacement: %v", err)
		}

		token, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if token != "token-two" {
			t.Errorf("expected 'token-two', got %q", token)
		}

		var count int
		if err := repo.db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected single credential row, got %d", count)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Save("token-one"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		token, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token after clear, got %q", token)
		}
	})

	t.Run("Clear Empty Store Is Noop", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Clear(); err != nil {
			t.Errorf("expected no error clearing empty store, got %v", err)
		}
	})
}

func TestHistoryRepository(t *testing.T) {
	t.Run("Record Generates Unique IDs", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		first, err := repo.Record(1, "Lecture 1")
		if err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		second, err := repo.Record(1, "Lecture 1")
		if err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		if first == "" || second == "" {
			t.Fatal("expected non-empty IDs")
		}
		if first == second {
			t.Errorf("expected distinct IDs, both were %q", first)
		}
	})

	t.Run("Recent Returns Newest First", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		base := time.Now().Add(-time.Hour)
		for i, title := range []string{"First", "Second", "Third"} {
			if _, err := repo.db.Exec(
				"INSERT INTO play_history (id, podcast_id, title, played_at) VALUES (?, ?, ?, ?)",
				shared.GenerateID(), i+1, title, base.Add(time.Duration(i)*time.Minute),
			); err != nil {
				t.Fatalf("failed to insert %s: %v", title, err)
			}
		}

		events, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("failed to query recent: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(events))
		}
		if events[0].Title != "Third" || events[2].Title != "First" {
			t.Errorf("expected newest first, got %q..%q", events[0].Title, events[2].Title)
		}
	})

	t.Run("Recent Honors Limit", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		for i := 0; i < 5; i++ {
			if _, err := repo.Record(i, "Episode"); err != nil {
				t.Fatalf("failed to record: %v", err)
			}
		}

		events, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("failed to query recent: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 events, got %d", len(events))
		}
	})

	t.Run("Recent With Empty History", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		events, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected no events, got %d", len(events))
		}
	})

	t.Run("CountForPodcast", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		for i := 0; i < 3; i++ {
			if _, err := repo.Record(7, "Lecture 7"); err != nil {
				t.Fatalf("failed to record: %v", err)
			}
		}
		if _, err := repo.Record(8, "Lecture 8"); err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		count, err := repo.CountForPodcast(7)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 plays, got %d", count)
		}
	})
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
)

// HistoryRepository records local play history alongside each play report.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a history repository backed by db.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts a play event with a generated ID and returns the ID. The ID
// doubles as the idempotency tag sent with the play report.
func (r *HistoryRepository) Record(podcastID int, title string) (string, error) {
	id := shared.GenerateID()

	query := "INSERT INTO play_history (id, podcast_id, title, played_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, id, podcastID, title, time.Now()); err != nil {
		return "", fmt.Errorf("failed to record play: %w", err)
	}
	return id, nil
}

// Recent returns the most recent play events, newest first.
func (r *HistoryRepository) Recent(limit int) ([]models.PlayEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, podcast_id, title, played_at
		FROM play_history
		ORDER BY played_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query play history: %w", err)
	}
	defer rows.Close()

	var events []models.PlayEvent
	for rows.Next() {
		var event models.PlayEvent
		if err := rows.Scan(&event.ID, &event.PodcastID, &event.Title, &event.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan play event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

// CountForPodcast returns how many local plays are recorded for an episode.
func (r *HistoryRepository) CountForPodcast(podcastID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM play_history WHERE podcast_id = ?", podcastID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return count, nil
}

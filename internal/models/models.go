package models

import (
	"strings"
	"time"
)

// Role values issued by the portal in credential claims.
const (
	RoleUser     = "user"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

// User represents a portal account as returned by the API.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// Podcast represents an uploaded episode with its media locator and usage counters.
type Podcast struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	AudioFileURL    string  `json:"audio_file_url"`
	CoverArtURL     *string `json:"cover_art_url"`
	OwnerID         int     `json:"owner_id"`
	UploadedAt      string  `json:"uploaded_at"`
	Author          *string `json:"author"`
	DurationMinutes *int    `json:"duration_minutes"`
	Views           int     `json:"views"`
	Plays           int     `json:"plays"`
}

// AuthorName returns the author display name, falling back when absent.
func (p Podcast) AuthorName() string {
	if p.Author == nil || *p.Author == "" {
		return "Unknown"
	}
	return *p.Author
}

// LiveStream status values.
const (
	StreamLive      = "live"
	StreamOffline   = "offline"
	StreamScheduled = "scheduled"
)

// LiveStream represents a live broadcast entry.
type LiveStream struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	StreamURL      *string `json:"stream_url"`
	Status         string  `json:"status"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	CurrentViewers int     `json:"current_viewers"`
	TotalViews     int     `json:"total_views"`
	HostID         int     `json:"host_id"`
}

// IsLive reports whether the stream is currently broadcasting.
func (s LiveStream) IsLive() bool {
	return strings.EqualFold(s.Status, StreamLive)
}

// Health represents the portal health check response.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// BackendLabel maps the health status to the label shown to users.
func (h Health) BackendLabel() string {
	if h.Status == "healthy" {
		return "Online"
	}
	return "Degraded"
}

// DatabaseLabel maps the database status to the label shown to users.
func (h Health) DatabaseLabel() string {
	if h.Database == "connected" {
		return "Connected"
	}
	return "Disconnected"
}

// Token is the response of the portal token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IsAdmin     bool   `json:"is_admin"`
	UserRole    string `json:"user_role"`
}

// PlayEvent is a locally recorded play, written alongside each play report.
//
// The ID doubles as a client-generated idempotency tag for the report.
type PlayEvent struct {
	ID        string
	PodcastID int
	Title     string
	PlayedAt  time.Time
}

// Live stream endpoints: listing, presence and broadcast control.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/podx/internal/models"
)

// LiveService talks to the portal's live stream endpoints. Starting and
// stopping a broadcast require an elevated role, enforced server-side.
type LiveService struct {
	client
}

// NewLiveService creates a live stream client for the given base address.
func NewLiveService(baseURL string, httpClient *http.Client, tokens TokenSource) *LiveService {
	return &LiveService{client: newClient(baseURL, httpClient, tokens)}
}

func (s *LiveService) Name() string { return "Live" }

// Streams lists live streams, optionally filtered by status
// ("live", "offline" or "scheduled").
func (s *LiveService) Streams(ctx context.Context, status string) ([]models.LiveStream, error) {
	endpoint := "/api/live/"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}

	var streams []models.LiveStream
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// Stream retrieves a single stream by ID.
func (s *LiveService) Stream(ctx context.Context, id int) (*models.LiveStream, error) {
	var stream models.LiveStream
	endpoint := fmt.Sprintf("/api/live/%d", id)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &stream); err != nil {
		return nil, err
	}
	return &stream, nil
}

// StartRequest describes a new broadcast.
type StartRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StreamURL   *string `json:"stream_url,omitempty"`
	Status      string  `json:"status"`
}

// Start creates a broadcast entry. An empty Status defaults to live.
func (s *LiveService) Start(ctx context.Context, req StartRequest) (*models.LiveStream, error) {
	if req.Status == "" {
		req.Status = models.StreamLive
	}

	var stream models.LiveStream
	if err := s.doRequest(ctx, http.MethodPost, "/api/live/", req, &stream); err != nil {
		return nil, err
	}
	return &stream, nil
}

// Stop takes a broadcast offline.
func (s *LiveService) Stop(ctx context.Context, id int) (*models.LiveStream, error) {
	body := map[string]string{"status": models.StreamOffline}

	var stream models.LiveStream
	endpoint := fmt.Sprintf("/api/live/%d", id)
	if err := s.doRequest(ctx, http.MethodPut, endpoint, body, &stream); err != nil {
		return nil, err
	}
	return &stream, nil
}

// Join registers the viewer with a stream, incrementing its viewer count.
func (s *LiveService) Join(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("/api/live/%d/join", id)
	return s.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// Leave removes the viewer from a stream.
func (s *LiveService) Leave(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("/api/live/%d/leave", id)
	return s.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

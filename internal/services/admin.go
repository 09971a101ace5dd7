// Admin console endpoints: user and content moderation.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/podx/internal/models"
)

// AdminService talks to the portal's admin endpoints. Every call requires an
// admin credential; the portal answers 403 otherwise and the detail is
// surfaced verbatim.
type AdminService struct {
	client
}

// NewAdminService creates an admin client for the given base address.
func NewAdminService(baseURL string, httpClient *http.Client, tokens TokenSource) *AdminService {
	return &AdminService{client: newClient(baseURL, httpClient, tokens)}
}

func (s *AdminService) Name() string { return "Admin" }

// Users lists all portal accounts.
func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.doRequest(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User retrieves a single account by ID.
func (s *AdminService) User(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/api/admin/users/%d", id)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserUpdate carries the mutable account fields; nil fields are left
// untouched by the portal.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UpdateUser modifies an account (role changes, deactivation).
func (s *AdminService) UpdateUser(ctx context.Context, id int, update UserUpdate) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/api/admin/users/%d", id)
	if err := s.doRequest(ctx, http.MethodPut, endpoint, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("/api/admin/users/%d", id)
	return s.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Podcasts lists all episodes for moderation.
func (s *AdminService) Podcasts(ctx context.Context) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	if err := s.doRequest(ctx, http.MethodGet, "/api/admin/podcasts", nil, &podcasts); err != nil {
		return nil, err
	}
	return podcasts, nil
}

// DeletePodcast removes an episode and its media.
func (s *AdminService) DeletePodcast(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("/api/admin/podcasts/%d", id)
	return s.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Streams lists all live streams for moderation.
func (s *AdminService) Streams(ctx context.Context) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	if err := s.doRequest(ctx, http.MethodGet, "/api/admin/live-streams", nil, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// UpdateStreamStatus forces a stream into the given status.
func (s *AdminService) UpdateStreamStatus(ctx context.Context, id int, status string) (*models.LiveStream, error) {
	var stream models.LiveStream
	endpoint := fmt.Sprintf("/api/admin/live-streams/%d/status?status_update=%s", id, url.QueryEscape(status))
	if err := s.doRequest(ctx, http.MethodPut, endpoint, nil, &stream); err != nil {
		return nil, err
	}
	return &stream, nil
}

// DeleteStream removes a live stream entry.
func (s *AdminService) DeleteStream(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("/api/admin/live-streams/%d", id)
	return s.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

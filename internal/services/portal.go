// Portal API implementation: auth, podcasts and health.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
	"golang.org/x/oauth2"
)

// PortalService talks to the portal's auth, podcast and health endpoints.
type PortalService struct {
	client
}

// NewPortalService creates a portal client for the given base address.
func NewPortalService(baseURL string, httpClient *http.Client, tokens TokenSource) *PortalService {
	return &PortalService{client: newClient(baseURL, httpClient, tokens)}
}

func (s *PortalService) Name() string { return "Portal" }

// Authenticate obtains a credential via the resource-owner password grant:
// form-encoded username/password against the token endpoint. Returns the raw
// access token; the caller hands it to the session manager.
func (s *PortalService) Authenticate(ctx context.Context, username, password string) (string, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  s.baseURL + "/api/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return token.AccessToken, nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new portal account.
func (s *PortalService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var user models.User
	if err := s.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me retrieves the authenticated user's profile.
func (s *PortalService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Podcasts retrieves the full playable-item list. The returned order is the
// playlist snapshot used for next/previous traversal.
func (s *PortalService) Podcasts(ctx context.Context) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	if err := s.doRequest(ctx, http.MethodGet, "/api/podcasts/", nil, &podcasts); err != nil {
		return nil, err
	}
	return podcasts, nil
}

// Podcast retrieves a single episode by ID.
func (s *PortalService) Podcast(ctx context.Context, id int) (*models.Podcast, error) {
	var podcast models.Podcast
	endpoint := fmt.Sprintf("/api/podcasts/%d", id)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &podcast); err != nil {
		return nil, err
	}
	return &podcast, nil
}

// ReportPlay issues the play-count increment for an episode.
func (s *PortalService) ReportPlay(ctx context.Context, podcastID int) error {
	endpoint := fmt.Sprintf("/api/podcasts/%d/play", podcastID)
	return s.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// UploadRequest describes a new episode upload. AudioPath is required;
// CoverArtPath and the metadata fields are optional.
type UploadRequest struct {
	Title           string
	Description     string
	Author          string
	DurationMinutes int
	AudioPath       string
	CoverArtPath    string
}

// Upload creates an episode via multipart form upload. Requires an elevated
// role, enforced server-side.
func (s *PortalService) Upload(ctx context.Context, req UploadRequest) (*models.Podcast, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}
	if req.AudioPath == "" {
		return nil, fmt.Errorf("%w: audio file", shared.ErrMissingArgument)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("title", req.Title); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if req.Description != "" {
		if err := form.WriteField("description", req.Description); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if req.Author != "" {
		if err := form.WriteField("author", req.Author); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if req.DurationMinutes > 0 {
		if err := form.WriteField("duration_minutes", strconv.Itoa(req.DurationMinutes)); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}

	if err := attachFile(form, "audio_file", req.AudioPath); err != nil {
		return nil, err
	}
	if req.CoverArtPath != "" {
		if err := attachFile(form, "cover_art", req.CoverArtPath); err != nil {
			return nil, err
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/podcasts/", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	s.authorize(httpReq)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, data)
	}

	var podcast models.Podcast
	if err := json.Unmarshal(data, &podcast); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &podcast, nil
}

// Health checks portal and database availability. Unauthenticated; a non-2xx
// response surfaces the status code.
func (s *PortalService) Health(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := s.doRequest(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func attachFile(form *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to copy %s: %w", field, err)
	}
	return nil
}

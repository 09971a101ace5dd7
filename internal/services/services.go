package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/podx/internal/shared"
)

// Service identifies a portal client.
type Service interface {
	Name() string
}

// TokenSource supplies the bearer credential for protected calls.
// Satisfied by session.Manager.
type TokenSource interface {
	Token() (string, bool)
}

// client is the shared request plumbing for the portal service clients.
type client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func newClient(baseURL string, httpClient *http.Client, tokens TokenSource) client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return client{baseURL: baseURL, httpClient: httpClient, tokens: tokens}
}

// doRequest performs an authenticated JSON request against the portal.
//
// body (when non-nil) is marshalled as JSON; result (when non-nil) is
// decoded from a 2xx response body. Non-2xx responses are converted with
// [apiError].
func (c *client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, data)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// authorize attaches the bearer credential when one is held.
func (c *client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// apiError converts a non-2xx portal response into an error. The portal
// reports failures as {"detail": "..."}; the detail is surfaced verbatim
// when present, otherwise a generic status message is used.
func apiError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("%w: %s (status %d)", sentinelFor(status), payload.Detail, status)
	}
	return fmt.Errorf("%w: status %d", sentinelFor(status), status)
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return shared.ErrNotAuthenticated
	case http.StatusForbidden:
		return shared.ErrForbidden
	default:
		return shared.ErrAPIRequest
	}
}

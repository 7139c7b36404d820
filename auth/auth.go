// Package auth is the client for the external Auth Verifier service:
// resolves an opaque API key to a creator user id.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/iox"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the number of retry attempts on transient failure.
const DefaultRetries = 2

// Config configures the auth client.
type Config struct {
	ServiceURL string
	Timeout    time.Duration
	Retries    int
}

// Client verifies API keys against the external Auth Verifier service.
type Client struct {
	config Config
	http   *http.Client
}

// New creates an auth client. Returns an error if ServiceURL is empty.
func New(cfg Config) (*Client, error) {
	if cfg.ServiceURL == "" {
		return nil, errors.New("auth: ServiceURL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultRetries
	}
	return &Client{config: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// User is the subset of the auth service's response this service needs.
type User struct {
	UserID int64 `json:"userId"`
}

// UserByAPIKey resolves apiKey to the user it belongs to. Returns
// apperr.Unauthorized if the auth service answers 401 or 403,
// apperr.Network wrapping ctx's error if ctx is done, and
// apperr.InternalServerError wrapping the last failure once every
// attempt has failed, mirroring report_auth_err's classification in
// handlers.rs.
func (c *Client) UserByAPIKey(ctx context.Context, apiKey string) (User, error) {
	attempts := 1 + c.config.Retries
	var lastErr error
	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return User{}, apperr.Wrap(apperr.Network, err)
		}
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * 250 * time.Millisecond
			select {
			case <-ctx.Done():
				return User{}, apperr.Wrap(apperr.Network, ctx.Err())
			case <-time.After(backoff):
			}
		}

		user, err := c.doRequest(ctx, apiKey)
		if err == nil {
			return user, nil
		}
		lastErr = err

		var unauthorized *unauthorizedError
		if errors.As(err, &unauthorized) {
			return User{}, apperr.New(apperr.Unauthorized)
		}
	}
	return User{}, apperr.Wrap(apperr.InternalServerError, lastErr)
}

type unauthorizedError struct{}

func (e *unauthorizedError) Error() string { return "auth: invalid api key" }

func (c *Client) doRequest(ctx context.Context, apiKey string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.ServiceURL+"/user_by_api_key", nil)
	if err != nil {
		return User{}, fmt.Errorf("auth: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("auth: request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return User{}, &unauthorizedError{}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return User{}, fmt.Errorf("auth: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("auth: decode response: %w", err)
	}
	return user, nil
}

// Close releases idle client connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/logger"
)

// Client represents an HTTP client for the Agreenbyte backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   auth.SessionStore
}

// New creates a new API client
func New(serverURL string) *Client {
	return &Client{
		baseURL: config.NormalizeServerURL(serverURL),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessions: auth.Default,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetSessionStore sets a custom session store (used in tests)
func (c *Client) SetSessionStore(store auth.SessionStore) {
	c.sessions = store
}

// BaseURL returns the backend base URL this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx backend response. The backend reports failures as
// {"msg": "..."}; when that payload is missing a generic message is used.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("request failed (status %d)", e.StatusCode)
}

// decodeError builds an APIError from a non-2xx response body
func decodeError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var payload struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		apiErr.Msg = payload.Msg
	}

	return apiErr
}

// do issues a JSON request against the backend. A nil body means no request
// body; a nil out means the response body is discarded. withToken attaches
// the stored bearer token for the client's server.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, withToken bool) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if withToken {
		token, _, err := c.sessions.Load(c.baseURL)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	logger.Logger.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sangkips/reservation-invoicing/pkg/apperror"
	"golang.org/x/oauth2"
)

const maxBodyBytes = 8 << 20

var ErrNotFound = errors.New("upstream: resource not found")

// StatusError is returned when the backend answers with a non-2xx status
// or an envelope whose ok flag is false. 401 and 403 map to the matching
// apperror values instead.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream: status %d: %s", e.StatusCode, e.Message)
}

// envelope is the backend's response wrapper. Some endpoints (invoice
// detail) answer with the bare payload instead.
type envelope struct {
	OK      *bool           `json:"ok"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client performs authenticated GETs against the booking backend
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the backend rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// getJSON fetches path and decodes its payload into out. A missing or null
// payload is reported as ErrNotFound.
func (c *Client) getJSON(ctx context.Context, cred oauth2.TokenSource, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if cred != nil {
		tok, err := cred.Token()
		if err != nil {
			return fmt.Errorf("obtain credential: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return apperror.ErrUnauthorized
	case http.StatusForbidden:
		return apperror.ErrForbidden
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: envelopeMessage(body)}
	}

	payload, err := unwrap(body, resp.StatusCode)
	if err != nil {
		return err
	}
	if isNull(payload) {
		return ErrNotFound
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// unwrap returns the envelope's data when body is an envelope, else body
func unwrap(body []byte, status int) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, ok := fields["data"]; !ok {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.OK != nil && !*env.OK {
		code := env.Status
		if code == 0 {
			code = status
		}
		if code == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, &StatusError{StatusCode: code, Message: env.Message}
	}
	return env.Data, nil
}

func envelopeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

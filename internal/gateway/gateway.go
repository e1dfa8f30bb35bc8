// Package gateway is the HTTP client for the school activity sign-up service.
// The service owns all business logic and persistence; this client only speaks
// its REST contract.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Activity is one registerable activity as the service reports it.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Catalog is the full activity snapshot from one list call. The service
// answers with a JSON object keyed by activity name; key order is preserved
// because it drives both the card list and the selection options.
type Catalog struct {
	Names  []string
	ByName map[string]Activity
}

// UnmarshalJSON decodes the name→activity object while keeping key order,
// which encoding/json's map decoding would throw away.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	c.Names = nil
	c.ByName = make(map[string]Activity)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}

		var activity Activity
		if err := dec.Decode(&activity); err != nil {
			return fmt.Errorf("failed to decode activity %q: %w", name, err)
		}

		c.Names = append(c.Names, name)
		c.ByName[name] = activity
	}

	_, err = dec.Token() // closing brace
	return err
}

// LoginResult is the session issued by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListActivities fetches the complete catalog. No authentication is needed;
// the list is visible to students too.
func (c *Client) ListActivities(ctx context.Context) (*Catalog, error) {
	var catalog Catalog
	if err := c.do(ctx, http.MethodGet, "/activities", "", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Signup registers a student email for an activity. Requires a valid admin
// token; a 401 answer means the session was revoked server-side.
func (c *Client) Signup(ctx context.Context, activity, email, token string) (string, error) {
	path := fmt.Sprintf("/activities/%s/signup?email=%s",
		url.PathEscape(activity), url.QueryEscape(email))

	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, path, token, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// Unregister removes a student email from an activity's roster.
func (c *Client) Unregister(ctx context.Context, activity, email, token string) (string, error) {
	path := fmt.Sprintf("/activities/%s/unregister?email=%s",
		url.PathEscape(activity), url.QueryEscape(email))

	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, path, token, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// Login exchanges teacher credentials for a session token. The service takes
// both values as query parameters, not a body.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	path := fmt.Sprintf("/auth/login?username=%s&password=%s",
		url.QueryEscape(username), url.QueryEscape(password))

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, path, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the session server-side. The success body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
}

// SessionStatus checks whether token is still a live session and returns the
// username it belongs to.
func (c *Client) SessionStatus(ctx context.Context, token string) (string, error) {
	var result struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/status", token, &result); err != nil {
		return "", err
	}
	return result.Username, nil
}

// do issues one request and decodes the JSON answer into out (when non-nil).
// Non-2xx answers become *APIError carrying the server's detail text.
func (c *Client) do(ctx context.Context, method, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("request failed", "request_id", requestID, "method", method, "path", req.URL.Path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("request handled",
		"request_id", requestID,
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Detail string `json:"detail"`
		}
		// A non-JSON error body just leaves Detail empty.
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Detail = payload.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

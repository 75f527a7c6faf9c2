package devconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Client talks to the DevConnect REST API on behalf of a single session.
// The backend authenticates with a session cookie set by /api/login; the
// cookie jar carries it ambiently on every call, so no credential object is
// passed through the call graph.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        *cookiejar.Jar
	logger     *zap.Logger
	userAgent  string
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		jar:       jar,
		logger:    logger,
		userAgent: "DevConnect-Bot/1.0",
	}, nil
}

// APIError is a non-2xx response from the backend. Message is the server's
// error body when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// AuthRequired reports whether the backend rejected the session credentials.
func (e *APIError) AuthRequired() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// doRequest performs one HTTP round trip. No retries: a failed call surfaces
// to the user, who re-triggers the action.
func (c *Client) doRequest(ctx context.Context, method, path string, body *payload) ([]byte, error) {
	fullURL := c.baseURL.String() + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("successful request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return respBody, nil
	}

	c.logger.Warn("API error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(respBody)),
	)

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(respBody),
	}
}

// errorMessage extracts the server's error text: either {"error": "..."} or
// a plain string body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return string(bytes.TrimSpace(body))
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body *payload) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, path, body)
}

func (c *Client) patch(ctx context.Context, path string, body *payload) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPatch, path, body)
}

func (c *Client) parseResponse(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// SessionCookies exports the jar's cookies for the API origin so a login can
// be persisted across restarts.
func (c *Client) SessionCookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

// RestoreCookies seeds the jar with previously persisted session cookies.
func (c *Client) RestoreCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.baseURL, cookies)
}

// ClearCookies drops the ambient session credentials.
func (c *Client) ClearCookies() {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return
	}
	c.jar = jar
	c.httpClient.Jar = jar
}

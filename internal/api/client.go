// Package api is a thin JSON client for the migration-tracking REST
// backend. It keeps no state beyond a cookie jar: every mutation is
// followed by a full refetch on the caller's side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend. The CSRF token arrives as a cookie on
// the first GET and is echoed back as a header on every mutation, the
// same dance the browser dashboard does.
type Client struct {
	baseURL    string
	csrfCookie string
	httpClient *http.Client
	// reportClient carries no Timeout: report generation outlives the
	// regular API timeout and is bounded by its own context deadline.
	reportClient *http.Client
	jar          http.CookieJar
	dumpDir      string
}

// NewClient creates a client for the backend at baseURL. csrfCookie is
// the cookie name carrying the CSRF token (usually "csrftoken").
func NewClient(baseURL, csrfCookie string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		csrfCookie: csrfCookie,
		jar:        jar,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		reportClient: &http.Client{Jar: jar},
		dumpDir:      os.TempDir(),
	}, nil
}

// APIError is a non-2xx response whose body carried an error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// send performs a mutating request with a JSON body and the CSRF header.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if token := c.csrfToken(); token != "" {
			req.Header.Set("X-CSRFToken", token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.malformed(resp.StatusCode, raw, err)
	}
	return nil
}

// apiError extracts {error} or {message} from a non-2xx body.
func (c *Client) apiError(status int, raw []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		msg := payload.Error
		if msg == "" {
			msg = payload.Message
		}
		return &APIError{Status: status, Message: msg}
	}
	return c.malformed(status, raw, fmt.Errorf("HTTP %d with non-JSON body", status))
}

// malformed dumps a body the client could not parse so it can be
// inspected, instead of silently swallowing it.
func (c *Client) malformed(status int, raw []byte, cause error) error {
	path, werr := c.dump(raw)
	if werr != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %w", status, cause)
	}
	return fmt.Errorf("unexpected response (HTTP %d), raw body saved to %s: %w", status, path, cause)
}

func (c *Client) dump(raw []byte) (string, error) {
	f, err := os.CreateTemp(c.dumpDir, "migrapanel-response-*.html")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(raw); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// csrfToken reads the CSRF cookie set by a previous GET.
func (c *Client) csrfToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == c.csrfCookie {
			return ck.Value
		}
	}
	return ""
}

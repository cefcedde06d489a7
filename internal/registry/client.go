package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go-registry-console/internal/logger"
)

// Client talks to the device-registry REST API on behalf of one browser
// tab. Each client owns its own cookie jar so the upstream session
// credential stays scoped to that tab, like the browser it stands in for.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the registry at baseURL. A nil-safe
// cookie jar keeps the upstream session cookie across calls.
func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON performs a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Non-2xx responses become
// APIError with the server message; transport failures become
// ConnectionError.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogUpstreamCall(method+" "+path, time.Since(start), err)
	}
	if err != nil {
		return &ConnectionError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.responseError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// responseError converts a non-2xx response into the matching error type.
// The registry reports errors as {"error": "..."}.
func (c *Client) responseError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(raw) > 0 {
		json.Unmarshal(raw, &payload)
	}
	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// Package gateway wraps the remote procedure convention of the storefront
// server: JSON POSTs to /api/method/<name> carrying a CSRF token, with
// responses optionally wrapped under a "message" field. The wrapper
// ambiguity is normalized here so callers only ever see one result shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const callTimeout = 30 * time.Second

// Client issues remote calls against one storefront server. The session
// cookie set by Login is carried by an internal cookie jar, so a Client
// is authenticated for as long as the server session lasts.
type Client struct {
	baseURL string
	csrf    string
	bearer  string
	http    *http.Client
	metrics *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithCSRFToken sets the anti-forgery token attached to every call.
// Without it the header is sent empty, which guest endpoints accept.
func WithCSRFToken(token string) Option {
	return func(c *Client) { c.csrf = token }
}

// WithBearerToken sets an API token sent as an Authorization header,
// used instead of a cookie session for scripted access.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.bearer = token }
}

// WithHTTPClient replaces the underlying HTTP client. Mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: callTimeout,
		},
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c, nil
}

// CallError is an application-level failure: the server answered but
// signalled an error status for the call.
type CallError struct {
	Method  string
	Status  int
	Message string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote call %s failed: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("remote call %s failed with status %d", e.Method, e.Status)
}

// Call invokes the named server method with the given arguments and
// returns the normalized result. Transport failures and non-2xx
// responses return an error; interpreting the ok flag of a 2xx
// response is up to the caller.
func (c *Client) Call(ctx context.Context, method string, args map[string]any) (Result, error) {
	requestID := uuid.NewString()
	start := time.Now()

	result, err := c.do(ctx, method, args, requestID)

	duration := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.observe(method, outcome, duration)

	if err != nil {
		slog.Warn("Remote call failed",
			"method", method,
			"request_id", requestID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return Result{}, err
	}

	slog.Debug("Remote call ok",
		"method", method,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}

func (c *Client) do(ctx context.Context, method string, args map[string]any, requestID string) (Result, error) {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode arguments for %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/api/method/%s", c.baseURL, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request for %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Frappe-CSRF-Token", c.csrf)
	req.Header.Set("X-Request-Id", requestID)
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("remote call %s: %w", method, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response for %s: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &CallError{
			Method:  method,
			Status:  resp.StatusCode,
			Message: serverMessage(payload),
		}
	}

	result, err := parseResult(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse response for %s: %w", method, err)
	}
	return result, nil
}

// serverMessage digs a human-readable message out of an error response
// body. Best effort; an empty string means the body was opaque.
func serverMessage(payload []byte) string {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	for _, key := range []string{"message", "exception", "exc_type"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// MetricsHandler serves the gateway's call metrics for debugging.
func (c *Client) MetricsHandler() http.Handler {
	return c.metrics.handler()
}

// Package api is the HTTP client for the hosting platform's CLI endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/structuresh/structure/internal/logging"
	"go.uber.org/zap"
)

const (
	// TokenHeader carries the API token.
	TokenHeader = "X-Structure-Token"
	// RequestIDHeader carries a per-request UUID for server-side correlation.
	RequestIDHeader = "X-Request-Id"

	// DefaultTimeout bounds every request unless overridden.
	DefaultTimeout = 20 * time.Second

	// maxResponseBytes caps decoded response bodies; project pulls are
	// bounded by the deploy size limit anyway.
	maxResponseBytes = 256 << 20
)

// TokenSource returns the API token to send with authenticated requests.
type TokenSource func() (string, error)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTokenSource sets where the API token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.token = ts
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// Client talks to the platform API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *zap.Logger
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		token:   func() (string, error) { return "", nil },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the status part every endpoint returns.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// postJSON sends payload as JSON and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out any) error {
	if payload == nil {
		payload = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body), true)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

// getJSON issues an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, authenticated bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.New().String())

	if authenticated {
		token, err := c.token()
		if err != nil {
			return nil, err
		}
		req.Header.Set(TokenHeader, token)
	}
	return req, nil
}

// do sends req and returns the response body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("requestID", req.Header.Get(RequestIDHeader)),
			zap.Error(err))
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("Request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("requestID", req.Header.Get(RequestIDHeader)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return resp.StatusCode, data, nil
}

// doJSON sends req and decodes a success envelope into out. A body that is
// not JSON yields an *Error with RequestFailed; success=false yields an
// *Error with the server's message.
func (c *Client) doJSON(req *http.Request, out any) error {
	status, data, err := c.do(req)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &Error{Status: status, Message: RequestFailed}
	}
	if !env.Success {
		return &Error{Status: status, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Status: status, Message: RequestFailed}
	}
	return nil
}

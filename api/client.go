// ABOUTME: REST client for the freight backend with bearer-token authentication
// ABOUTME: Reads the token per call, tags each request with a ULID, and logs with zap
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// RequestIDHeader carries the per-request ULID.
const RequestIDHeader = "X-Request-Id"

// TokenStore supplies the bearer token. It returns ErrNoToken when none is stored.
type TokenStore interface {
	Token() (string, error)
}

// Client talks to /{resource}[/{id}] endpoints.
type Client struct {
	baseURL string
	tokens  TokenStore
	base    http.RoundTripper
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client rooted at baseURL, e.g. "https://example.com/api".
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		base:    http.DefaultTransport,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authorized reports ErrNoToken when no token is stored, without any request.
func (c *Client) Authorized() error {
	_, err := c.token()
	return err
}

// List fetches GET /{resource} into out.
func (c *Client) List(ctx context.Context, resource string, out any) error {
	return c.do(ctx, http.MethodGet, "/"+resource, nil, "", out)
}

// Get fetches GET /{resource}/{id} into out.
func (c *Client) Get(ctx context.Context, resource string, id int64, out any) error {
	return c.do(ctx, http.MethodGet, itemPath(resource, id), nil, "", out)
}

// Create sends POST /{resource}.
func (c *Client) Create(ctx context.Context, resource string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, "/"+resource, body, out)
}

// Update sends PUT /{resource}/{id}.
func (c *Client) Update(ctx context.Context, resource string, id int64, body, out any) error {
	return c.sendJSON(ctx, http.MethodPut, itemPath(resource, id), body, out)
}

// Delete sends DELETE /{resource}/{id}.
func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(resource, id), nil, "", nil)
}

// Post sends a JSON POST to an arbitrary path under the API root.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, "/"+strings.TrimLeft(path, "/"), body, out)
}

// UpdateMultipart sends PUT /{resource}/{id} as multipart/form-data.
func (c *Client) UpdateMultipart(ctx context.Context, resource string, id int64, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, itemPath(resource, id), body, contentType, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := ulid.Make().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.base,
		},
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       string(payload),
			RequestID:  requestID,
		}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", ErrNoToken
	}
	token, err := c.tokens.Token()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func itemPath(resource string, id int64) string {
	return "/" + resource + "/" + strconv.FormatInt(id, 10)
}

// StaticToken is a fixed token, useful for tests and one-off commands.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

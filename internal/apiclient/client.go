// Package apiclient wraps outbound HTTP calls to the ContentForge backend.
// Every operation attaches the bearer token when one is available and
// normalizes any failure into a single *APIError value.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
// Implemented by session.Manager.
type TokenSource interface {
	Token() string
}

// Credentials is the register/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Client is the API gateway client. Construct with New; the zero value is not usable.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, custom timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTokenSource attaches a source of bearer tokens to authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New constructs a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 120 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource wires the token source after construction; needed because the
// session manager and the client reference each other.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// token returns the current bearer token, or "" when none is available.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do performs one request. When authed is true, the current token is attached
// as "Authorization: Bearer <token>"; a missing token never produces an empty
// header. Non-2xx responses and transport failures come back as *APIError.
// out may be nil for operations with no response body.
func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// requireToken fails fast before any network traffic when no token is present.
func (c *Client) requireToken() error {
	if c.token() == "" {
		return fmt.Errorf("no token: %w", errs.ErrAuthRequired)
	}
	return nil
}

// Register creates a new account. Unauthenticated call.
func (c *Client) Register(ctx context.Context, creds Credentials) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPost, "/auth/register", false, creds, &u)
	return u, err
}

// Login exchanges credentials for an access token. Unauthenticated call.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var lr LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", false, creds, &lr)
	return lr, err
}

// GenerateContent submits a generation request.
func (c *Client) GenerateContent(ctx context.Context, req model.GenerationRequest) (model.GenerationResult, error) {
	var res model.GenerationResult
	if err := c.requireToken(); err != nil {
		return res, err
	}
	err := c.do(ctx, http.MethodPost, "/api/generate", true, req, &res)
	return res, err
}

// History lists the caller's saved generations, in backend order
// (newest first by convention, not enforced here).
func (c *Client) History(ctx context.Context) ([]model.ContentHistoryItem, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var items []model.ContentHistoryItem
	err := c.do(ctx, http.MethodGet, "/api/history", true, nil, &items)
	return items, err
}

// ContentByID fetches one saved generation. A 404 unwraps to errs.ErrNotFound.
func (c *Client) ContentByID(ctx context.Context, id int64) (model.ContentHistoryItem, error) {
	var item model.ContentHistoryItem
	if err := c.requireToken(); err != nil {
		return item, err
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/history/%d", id), true, nil, &item)
	return item, err
}

// DeleteContent removes one saved generation.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/history/%d", id), true, nil, nil)
}

// Health probes the backend. Unauthenticated call.
func (c *Client) Health(ctx context.Context) (model.HealthStatus, error) {
	var hs model.HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", false, nil, &hs)
	return hs, err
}

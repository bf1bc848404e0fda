// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api is the HTTP transport to the blog backend. It knows how to
// build resource URLs, attach credentials, encode JSON bodies and turn
// failed responses into *Error values. Entity-specific mapping lives in the
// gateway package.
package api

import (
	"bytes"
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

const (
	// DefaultTimeout bounds a single API call when no http.Client is given.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponseSize caps how much of a response body is read.
	DefaultMaxResponseSize = 10 << 20

	// RequestIDHeader correlates client log lines with server logs.
	RequestIDHeader = "X-Request-ID"

	contentTypeJSON       = "application/json"
	ContentTypeMergePatch = "application/merge-patch+json"
)

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client performs JSON requests against one backend.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
	maxBody int64
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxResponseSize sets the largest response body the client accepts.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// NewClient creates a client rooted at baseURL, e.g. "https://blog.example.com/".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		maxBody: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint resolves a resource path such as "api/posts" against the base URL.
func (c *Client) Endpoint(path string) string {
	return c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")}).String()
}

// Request describes a single API call.
type Request struct {
	Method      string
	URL         string
	Query       url.Values
	Body        any
	ContentType string // defaults to application/json when Body is set
}

// Do sends req and decodes a JSON response into out (skipped when out is
// nil). It returns the response headers so callers can read pagination data.
func (c *Client) Do(ctx context.Context, req Request, out any) (http.Header, error) {
	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("api marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.Body != nil {
		ct := req.ContentType
		if ct == "" {
			ct = contentTypeJSON
		}
		httpReq.Header.Set("Content-Type", ct)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("api token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("api request failed",
			"method", req.Method,
			"path", httpReq.URL.Path,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("api http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("api read body: %w", err)
	}
	if int64(len(respBody)) > c.maxBody {
		return nil, fmt.Errorf("api read body: %w (limit %d bytes)", ErrResponseTooLarge, c.maxBody)
	}

	c.logger.Debug("api request",
		"method", req.Method,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(req.Method, httpReq.URL.Path, resp.StatusCode, respBody)
		c.logger.Warn("api error response",
			"method", req.Method,
			"path", httpReq.URL.Path,
			"status", resp.StatusCode,
			"request_id", requestID,
		)
		return resp.Header, apiErr
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.Header, fmt.Errorf("api unmarshal: %w", err)
		}
	}
	return resp.Header, nil
}

// Get is a convenience wrapper for GET requests.
func (c *Client) Get(ctx context.Context, target string, query url.Values, out any) (http.Header, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: target, Query: query}, out)
}

// FetchPage GETs a JSON array and wraps it with the response's pagination
// headers.
func FetchPage[T any](ctx context.Context, c *Client, target string, opts RequestOptions) (*Page[T], error) {
	var items []T
	h, err := c.Get(ctx, target, opts.Values(), &items)
	if err != nil {
		return nil, err
	}
	return newPage(items, h), nil
}

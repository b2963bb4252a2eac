// Package rest implements the remote backend: each facade method maps to
// exactly one REST call against the configured base URL. Transport failures
// of any kind (connection refused, timeout, non-2xx without an envelope,
// malformed response) are caught here and translated into a failure
// envelope — they never escape to a caller as a Go error.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/domain"
)

// maxResponseBytes bounds how much of a response body we will read.
const maxResponseBytes = 4 << 20

// TokenSource supplies the bearer token attached to every request. Token
// storage and refresh live outside this layer.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed token. The empty string sends no
// Authorization header.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client carries the shared HTTP plumbing for the per-domain facades.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenSource sets the bearer token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates the shared client for a base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: 15 * time.Second},
		tokens: StaticToken(""),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Jobs returns the job board facade backed by this client.
func (c *Client) Jobs() *JobService {
	return &JobService{c: c}
}

// Directory returns the directory facade backed by this client.
func (c *Client) Directory() *DirectoryService {
	return &DirectoryService{c: c}
}

// call issues one request and normalizes every outcome into an envelope.
// The protocol is envelope-first: any body that decodes as an envelope is
// the answer, whatever the status code; anything else is a transport
// failure with a human-readable message.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) domain.Envelope[T] {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.logger.Warn("failed to encode request", "path", path, "err", err)
			return domain.Fail[T]("Could not encode the request.")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return domain.Fail[T]("Could not build the request.")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("token source failed", "err", err)
		return domain.Fail[T]("Could not authenticate with the alumni service.")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return domain.Fail[T]("Could not reach the alumni service.")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Fail[T]("Could not read the alumni service response.")
	}

	var env domain.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Debug("undecodable response", "method", method, "path", path,
			"status", resp.StatusCode, "err", err)
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return domain.Failf[T]("The alumni service returned an error (HTTP %d).", resp.StatusCode)
		}
		return domain.Fail[T]("Unexpected response from the alumni service.")
	}
	return env
}

func pathID(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

// apiPath joins the versioned API prefix with escaped path segments.
func apiPath(segments ...string) string {
	return "/api/v1" + pathID(segments...)
}

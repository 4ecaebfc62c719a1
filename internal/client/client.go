// Package client talks to the RocketPop SSO backend.
//
// Every call except Login and Ping carries the persisted session token as a bearer
// token. The token is attached by an oauth2.Transport reading the token source given
// to New, so callers never pass tokens around.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/rocketpop/rocketpop-sso/internal/config"
)

const (
	// HeaderRequestID carries the id of every request, it is logged on both sides.
	HeaderRequestID = "X-Request-ID"

	maxBodySize     = 1 << 20
	maxPlainMessage = 200
)

// Client is the typed interface to the backend endpoints.
type Client struct {
	baseURL  string
	base     *http.Client
	plain    *http.Client
	authed   *http.Client
	validate *validator.Validate
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the http client. Its transport becomes the base of the bearer transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.base = hc
		}
	}
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client for the backend at cfg.URL. ts supplies the bearer token.
func New(cfg config.Backend, ts oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		base:     &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.Logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.plain = c.base
	c.authed = &http.Client{
		Timeout:       c.base.Timeout,
		Jar:           c.base.Jar,
		CheckRedirect: c.base.CheckRedirect,
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   c.base.Transport,
		},
	}

	return c
}

// request describes a single backend call.
type request struct {
	method string
	path   string
	query  url.Values
	scope  scope
	in     any
	out    any
}

func (c *Client) do(ctx context.Context, r request) error {
	var body io.Reader

	if r.in != nil {
		b, err := json.Marshal(r.in)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %w", ErrInvalidRequest, err)
		}

		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInvalidRequest, err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.plain
	if r.scope != scopePublic {
		hc = c.authed
	}

	logger := c.log.With().Str("request_id", requestID).Str("method", r.method).Str("path", r.path).Logger()
	logger.Debug().Msg("backend request")

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		}

		logger.Warn().Err(err).Msg("backend unreachable")

		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrNetwork, err)
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("backend response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, raw, r.scope)
	}

	if r.out == nil {
		return nil
	}

	if err = json.Unmarshal(raw, r.out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrUnexpectedResponse, err)
	}

	return nil
}

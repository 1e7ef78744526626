// Package api provides the HTTP gateways to the finance backend.
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

	"golang.org/x/time/rate"

	"github.com/Veraticus/smart-finance/internal/common"
)

// Config holds backend connection settings.
type Config struct {
	// Transport is the innermost round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    *slog.Logger
	BaseURL   string
	// RateLimit is in requests per second; zero disables limiting.
	RateLimit float64
	Timeout   time.Duration
	Burst     int
}

// Client talks JSON to the finance backend. It implements every gateway
// interface in this package.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	authPrefix string
}

// NewClient creates a backend client. sessions may be nil, in which case no
// request is ever authenticated.
func NewClient(cfg Config, sessions SessionSource) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base URL", common.ErrMissingConfig)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", common.ErrInvalidConfig, cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	inner := cfg.Transport
	if inner == nil {
		inner = http.DefaultTransport
	}

	authPrefix := AuthPrefix(base.Path)

	stages := []Stage{WithRequestID()}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		stages = append(stages, WithRateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	if sessions != nil {
		stages = append(stages, WithAuth(sessions, authPrefix))
	}
	stages = append(stages, WithLogging(logger))

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: Chain(inner, stages...),
			Timeout:   cfg.Timeout,
		},
		logger:     logger,
		authPrefix: authPrefix,
	}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint resolves an escaped path relative to the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends body (if any) as JSON and decodes a JSON response into out (if any).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, query, reader, contentType, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s %s response: %w", common.ErrRequestFailed, method, path, err)
	}
	return nil
}

// send performs the request and returns the response for any 2xx status.
// The caller closes the body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", common.ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		return nil, newAPIError(method, "/"+path, resp)
	}
	return resp, nil
}

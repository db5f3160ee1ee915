// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client implements the navigation store transport over the JSON REST API.
package client

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
	"golang.org/x/time/rate"
)

// Client constants
const (
	DefaultTimeout        = 30 * time.Second // Per-request timeout
	DefaultMaxResponseLen = 32 << 20         // Response body limit when none is configured (32MB)
	UserAgent             = "navedit/1.0"    // User-Agent header value
	RequestIDHeader       = "X-Request-ID"   // Correlates client and server logs
)

// Config holds transport configuration.
type Config struct {
	BaseURL      string        `env:"URL" envDefault:"http://localhost:8080/api/v1"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
	WritesPerSec float64       `env:"WRITES_PER_SEC" envDefault:"20"`
	Burst        int           `env:"BURST" envDefault:"10"`

	// MaxResponseBytes bounds a response body. The tree listing carries
	// every page's content, so it has to fit the whole site.
	MaxResponseBytes int64 `env:"MAX_RESPONSE_BYTES" envDefault:"33554432"`
}

// Client talks to the store of record. It is safe for concurrent use.
type Client struct {
	baseURL     string
	maxResponse int64
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New creates a client for the given configuration.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxResponse := cfg.MaxResponseBytes
	if maxResponse <= 0 {
		maxResponse = DefaultMaxResponseLen
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxResponse: maxResponse,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
	if cfg.WritesPerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.WritesPerSec), burst)
	}
	return c, nil
}

// Get fetches path and decodes the data payload into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post creates a resource.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch partially updates a resource.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// envelope is the success body of the API.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope is the failure body of the API.
type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	// Reads are never throttled; only writes count against the budget.
	if c.limiter != nil && method != http.MethodGet {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for write budget: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// One byte past the limit tells a full body from a cut one.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponse+1))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if int64(len(respBody)) > c.maxResponse {
		return fmt.Errorf("%w: %s %s exceeds %d bytes", ErrResponseTooLarge, method, path, c.maxResponse)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/productboard/product"
)

// DefaultBaseURL is the local development API address.
const DefaultBaseURL = "http://localhost:5103"

const (
	productsPath = "/api/product"
	healthPath   = "/health"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxResponseBodySize = 1 << 20 // 1MB
)

// ErrBodyTooLarge is returned when a response body exceeds the 1MB limit.
var ErrBodyTooLarge = errors.New("response body exceeds 1MB")

// connection pooling limits; the dashboard talks to a single host
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 4
	defaultIdleConnTimeout     = 60 * time.Second
)

// HealthStatus is the outcome of a health probe.
type HealthStatus string

const (
	// HealthOnline means the health endpoint answered with a 2xx status.
	HealthOnline HealthStatus = "online"

	// HealthOffline means the probe failed or got a non-2xx status.
	HealthOffline HealthStatus = "offline"
)

// Online reports whether h is [HealthOnline].
func (h HealthStatus) Online() bool {
	return h == HealthOnline
}

// Client is an HTTP client for the product API.
//
// Client has no global timeout. A per-request timeout may be set with
// [WithTimeout]; when it is zero only the transport defaults and the
// caller's context apply. Response bodies over 1MB are rejected with
// [ErrBodyTooLarge].
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a [Client] for the API rooted at baseURL.
//
// An empty baseURL selects [DefaultBaseURL]. Returns an error if the URL is
// not an absolute http or https URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if err := ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ValidateBaseURL reports whether raw is usable as an API base URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base URL must include a host")
	}
	return nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchProducts retrieves the product list.
//
// A bare array and a {"data": [...]} envelope both yield the inner list;
// any other body yields an empty list. Transport failures, bodies over 1MB,
// non-2xx responses, truncated JSON and undecodable product elements return
// a [*NetworkError].
func (c *Client) FetchProducts(ctx context.Context) ([]product.Product, error) {
	target := c.baseURL + productsPath
	requestID := uuid.NewString()

	resp, err := c.get(ctx, target, requestID)
	if err != nil {
		return nil, &NetworkError{URL: target, RequestID: requestID, Err: err}
	}

	if resp.statusCode < 200 || resp.statusCode > 299 {
		netErr := &NetworkError{
			URL:           target,
			StatusCode:    resp.statusCode,
			RequestID:     requestID,
			ServerMessage: serverMessage(resp.body),
		}
		c.logger.Warn("product fetch rejected",
			"url", target,
			"status_code", resp.statusCode,
			"request_id", requestID,
			"latency_ms", resp.latency.Milliseconds(),
		)
		return nil, netErr
	}

	payload, err := product.Decode(resp.body)
	if err != nil {
		return nil, &NetworkError{URL: target, StatusCode: resp.statusCode, RequestID: requestID, Err: err}
	}

	c.logger.Debug("products fetched",
		"url", target,
		"shape", payload.Shape.String(),
		"count", len(payload.Items),
		"request_id", requestID,
		"latency_ms", resp.latency.Milliseconds(),
	)
	return payload.Items, nil
}

// ProbeHealth checks the API health endpoint once.
// Any 2xx response is [HealthOnline]; everything else is [HealthOffline].
func (c *Client) ProbeHealth(ctx context.Context) HealthStatus {
	target := c.baseURL + healthPath
	requestID := uuid.NewString()

	resp, err := c.get(ctx, target, requestID)
	if err != nil {
		c.logger.Debug("health probe failed", "url", target, "request_id", requestID, "error", err.Error())
		return HealthOffline
	}
	if resp.statusCode < 200 || resp.statusCode > 299 {
		c.logger.Debug("health probe unhealthy", "url", target, "request_id", requestID, "status_code", resp.statusCode)
		return HealthOffline
	}
	return HealthOnline
}

// Close closes idle connections. The client remains usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

type response struct {
	body       []byte
	statusCode int
	latency    time.Duration
}

func (c *Client) get(ctx context.Context, target, requestID string) (response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// one extra byte tells an oversized body apart from one at the limit
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxResponseBodySize {
		return response{}, ErrBodyTooLarge
	}

	return response{
		body:       body,
		statusCode: resp.StatusCode,
		latency:    time.Since(start),
	}, nil
}

// serverMessage extracts a string "error" or "message" field from a JSON
// error body. Returns "" when neither is present.
func serverMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{payload.Error, payload.Message} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

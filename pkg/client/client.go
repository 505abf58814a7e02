// Package client provides the Yango Tech B2B API client with request
// allow-listing, bounded retry, rate-limit cooldown, and error
// classification.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/retailops/yango-b2b-mcp/pkg/ratelimit"
)

// Prometheus metrics for API client operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yango_api_requests_total",
		Help: "Total B2B API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yango_api_request_duration_seconds",
		Help:    "B2B API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yango_api_errors_total",
		Help: "Total B2B API errors by kind",
	}, []string{"kind"})
)

// apiPrefix is prepended to every allow-listed endpoint path.
const apiPrefix = "/b2b/v1"

// Allow-listed B2B API endpoints. Anything else is rejected before any
// network I/O happens.
const (
	EndpointOrderGet      = "/orders/get"
	EndpointOrderState    = "/orders/state"
	EndpointProductsQuery = "/products/query"
	EndpointStocksQuery   = "/stocks/query"
)

var allowedEndpoints = map[string]struct{}{
	EndpointOrderGet:      {},
	EndpointOrderState:    {},
	EndpointProductsQuery: {},
	EndpointStocksQuery:   {},
}

// Client is the Yango Tech B2B API client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Tracker
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration. All values are injected
// explicitly; nothing is read from the environment here.
type Config struct {
	// APIKey is the bearer token for the Authorization header (required).
	APIKey string

	// BaseURL is the API origin, e.g. https://api.retailtech.yango.com.
	BaseURL string

	// UserAgent identifies this integration to the remote API.
	UserAgent string

	// Timeout bounds each individual HTTP call.
	Timeout time.Duration

	// MaxRetries bounds attempts for retriable failures (network, 5xx, 429).
	MaxRetries int

	// MaxPages bounds full-listing walks against a misbehaving server.
	MaxPages int

	// PageLimit is the page size used when walking full listings.
	PageLimit int

	// Redis enables the shared rate-limit cooldown when set. Optional.
	Redis *redis.Client
}

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.retailtech.yango.com"

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		UserAgent:  "yango-b2b-mcp/0.1.0",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		MaxPages:   1000,
		PageLimit:  100,
	}
}

// New creates a new B2B API client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.UserAgent == "" {
		cfg.UserAgent = "yango-b2b-mcp/0.1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1000
	}
	if cfg.PageLimit <= 0 || cfg.PageLimit > 1000 {
		cfg.PageLimit = 100
	}

	logger := log.With().Str("component", "b2b-client").Logger()

	var tracker *ratelimit.Tracker
	if cfg.Redis != nil {
		tracker = ratelimit.NewTracker(cfg.Redis, logger)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: tracker,
		config:      cfg,
		logger:      logger,
	}, nil
}

// apiEnvelope is the best-effort shape of non-2xx response bodies.
type apiEnvelope struct {
	Message string `json:"message"`
}

// do performs a POST request to an allow-listed endpoint and returns the
// raw JSON response body. Retriable failures are retried with backoff up
// to the configured bound.
func (c *Client) do(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	if _, ok := allowedEndpoints[endpoint]; !ok {
		return nil, newValidationError("endpoint %q is not allow-listed", endpoint)
	}

	startTime := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Gate on shared cooldown state before spending a request.
	if c.rateLimiter != nil {
		allowed, err := c.rateLimiter.ShouldAllowRequest(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Rate limit check failed, allowing request")
		} else if !allowed {
			c.logger.Warn().
				Str("endpoint", endpoint).
				Msg("Request blocked by rate-limit cooldown")
			apiRequestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
			return nil, &APIError{
				Kind:    KindRateLimited,
				Message: "request blocked: rate-limit cooldown active",
			}
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newValidationError("encode request payload: %v", err)
	}

	url := c.config.BaseURL + apiPrefix + endpoint

	c.logger.Debug().
		Str("endpoint", endpoint).
		Msg("Executing B2B API request")

	var raw json.RawMessage

	retryErr := retryWithBackoff(ctx, c.config.MaxRetries, func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if reqErr != nil {
			return newValidationError("create request: %v", reqErr)
		}
		req.Header.Set("Authorization", "OAuth "+c.config.APIKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)

		resp, reqErr := c.httpClient.Do(req)
		if reqErr != nil {
			c.logger.Error().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			apiErrorsTotal.WithLabelValues(string(KindNetwork)).Inc()
			apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return &APIError{Kind: KindNetwork, Message: reqErr.Error(), Err: reqErr}
		}
		defer resp.Body.Close()

		apiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			data, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				apiErrorsTotal.WithLabelValues(string(KindNetwork)).Inc()
				return &APIError{Kind: KindNetwork, Message: "read response body", Err: readErr}
			}
			raw = data
			return nil
		}

		kind := classifyStatus(resp.StatusCode)
		apiErrorsTotal.WithLabelValues(string(kind)).Inc()

		if kind == KindRateLimited && c.rateLimiter != nil {
			if err := c.rateLimiter.RecordCooldown(ctx, resp.Header.Get("Retry-After")); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to record rate-limit cooldown")
			}
		}

		message := resp.Status
		var envelope apiEnvelope
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
				message = envelope.Message
			}
		}

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_kind", string(kind)).
			Msg("B2B API request error")

		return &APIError{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	})

	if retryErr != nil {
		return nil, retryErr
	}
	return raw, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

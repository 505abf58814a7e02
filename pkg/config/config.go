// Package config loads the server configuration from the environment.
// Values are threaded explicitly into component constructors; nothing
// deeper than this package reads the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/retailops/yango-b2b-mcp/pkg/logging"
)

// Base URLs for the two known API environments.
const (
	ProductionBaseURL = "https://api.retailtech.yango.com"
	TestBaseURL       = "https://api.tst.eu.cloudretail.tech"
)

// Config is the full server configuration.
type Config struct {
	// APIKey authenticates against the B2B API (required).
	APIKey string

	// BaseURL is the API origin.
	BaseURL string

	// Language is the preferred locale for product display names.
	Language string

	// Timeout bounds each individual API call.
	Timeout time.Duration

	// MaxRetries bounds retries for retriable API failures.
	MaxRetries int

	// MaxPages bounds full-listing pagination walks.
	MaxPages int

	// PageLimit is the page size for full-listing walks.
	PageLimit int

	// CatalogTTL is how long a cached catalog snapshot stays valid.
	CatalogTTL time.Duration

	// RedisURL enables the shared catalog cache and rate-limit cooldown
	// when non-empty (host:port).
	RedisURL string

	// MetricsAddr exposes Prometheus metrics over HTTP when non-empty
	// (e.g. ":9090").
	MetricsAddr string

	// Logging configures the zerolog setup.
	Logging logging.Config
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present but never required.
func Load() (Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("YANGO_TECH_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("YANGO_TECH_API_KEY environment variable is required")
	}

	cfg := Config{
		APIKey:      apiKey,
		BaseURL:     getEnv("YANGO_TECH_BASE_URL", ProductionBaseURL),
		Language:    getEnv("YANGO_TECH_LANGUAGE", "en_EN"),
		Timeout:     time.Duration(getEnvInt("YANGO_TECH_TIMEOUT", 30)) * time.Second,
		MaxRetries:  getEnvInt("YANGO_TECH_MAX_RETRIES", 3),
		MaxPages:    getEnvInt("YANGO_TECH_MAX_PAGES", 1000),
		PageLimit:   getEnvInt("YANGO_TECH_PAGE_LIMIT", 100),
		CatalogTTL:  time.Duration(getEnvInt("CATALOG_CACHE_TTL", 900)) * time.Second,
		RedisURL:    os.Getenv("REDIS_URL"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		Logging: logging.Config{
			Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnvBool("LOG_PRETTY", false),
			Output: os.Stderr,
		},
	}
	return cfg, nil
}

// Environment names the API environment the base URL points at. Used to
// namespace shared cache state.
func (c *Config) Environment() string {
	if strings.Contains(c.BaseURL, ".tst.") {
		return "test"
	}
	return "production"
}

// getEnv returns the environment value or a default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment value or a default when unset
// or unparsable.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvBool returns a boolean environment value or a default when unset
// or unparsable.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

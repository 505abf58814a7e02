// Command b2b-mcp runs the Yango Tech B2B MCP server over stdio.
//
// The process speaks the MCP protocol on stdout, so all logging goes to
// stderr. Configuration comes from the environment (and an optional .env
// file); YANGO_TECH_API_KEY is the only required setting.
package main

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/retailops/yango-b2b-mcp/internal/server"
	"github.com/retailops/yango-b2b-mcp/pkg/cache"
	"github.com/retailops/yango-b2b-mcp/pkg/client"
	"github.com/retailops/yango-b2b-mcp/pkg/config"
	"github.com/retailops/yango-b2b-mcp/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.DefaultConfig())
		logger := logging.NewLogger("main")
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Setup(cfg.Logging)
	logger := logging.NewLogger("main")

	// Redis is optional: without it the catalog cache degrades to a full
	// catalog walk per request and the rate-limit cooldown is per-process.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("redis_url", cfg.RedisURL).
				Msg("Redis unreachable, continuing without shared cache")
			redisClient = nil
		} else {
			logger.Info().Str("redis_url", cfg.RedisURL).Msg("Connected to Redis")
		}
	}

	apiClient, err := client.New(client.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		MaxPages:   cfg.MaxPages,
		PageLimit:  cfg.PageLimit,
		Redis:      redisClient,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API client")
	}

	var manager *cache.Manager
	if redisClient != nil {
		manager = cache.NewManager(redisClient, cfg.Environment())
	}
	catalog := cache.NewProvider(apiClient, manager, cfg.CatalogTTL)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	srv := server.New(apiClient, catalog, cfg.Language).MCPServer()

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("environment", cfg.Environment()).
		Str("language", cfg.Language).
		Msg("Starting MCP server on stdio")

	if err := mcpserver.ServeStdio(srv); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// serveMetrics exposes Prometheus metrics on a side listener.
func serveMetrics(addr string) {
	logger := logging.NewLogger("metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info().Str("addr", addr).Msg("Serving Prometheus metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics listener failed")
	}
}

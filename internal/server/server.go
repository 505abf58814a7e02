// Package server exposes the B2B API operations as MCP tools, prompts,
// and resources for an AI assistant host.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/retailops/yango-b2b-mcp/pkg/client"
	"github.com/retailops/yango-b2b-mcp/pkg/enrich"
	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// Name and Version identify the server to MCP hosts.
const (
	Name    = "Yango Tech B2B API"
	Version = "0.1.0"
)

// API is the subset of the B2B client the tool surface needs. Narrowed to
// an interface so handlers are testable against fakes.
type API interface {
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetOrderStatus(ctx context.Context, orderID string) (string, error)
	GetAllStocks(ctx context.Context) ([]models.Stock, error)
	GetStocksPage(ctx context.Context, cursor *string, limit int) (models.Page[models.Stock], error)
}

// Server wires the API client, catalog provider, and enrichment engine
// behind the MCP tool surface.
type Server struct {
	api      API
	catalog  enrich.ProductLoader
	resolver *enrich.CatalogResolver
	language string
	logger   zerolog.Logger
}

// New creates the tool surface. catalog supplies the product listing used
// both for product tools and for name enrichment; language selects the
// preferred display-name locale.
func New(api API, catalog enrich.ProductLoader, language string) *Server {
	if language == "" {
		language = models.DefaultLanguage
	}
	return &Server{
		api:      api,
		catalog:  catalog,
		resolver: enrich.NewCatalogResolver(catalog, language),
		language: language,
		logger:   log.With().Str("component", "mcp-server").Logger(),
	}
}

// MCPServer builds the MCP server with all tools, prompts, and resources
// registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools(srv)
	s.registerPrompts(srv)
	s.registerResources(srv)

	return srv
}

// errorPayload is the structured error returned to the host instead of a
// protocol-level failure.
type errorPayload struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// formatError converts an API failure into the structured error payload.
func formatError(err error) string {
	var payload errorPayload
	payload.Error.Kind = string(client.KindOf(err))
	payload.Error.Message = err.Error()

	data, merr := json.Marshal(payload)
	if merr != nil {
		return fmt.Sprintf(`{"error":{"kind":"server","message":%q}}`, err.Error())
	}
	return string(data)
}

// formatJSON renders a value as indented JSON for tool output.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}

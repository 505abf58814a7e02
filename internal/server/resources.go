package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retailops/yango-b2b-mcp/pkg/enrich"
)

const orderResourcePrefix = "yango://orders/"

// registerResources wires the order resource template into the MCP server.
func (s *Server) registerResources(srv *server.MCPServer) {
	tmpl := mcp.NewResourceTemplate(
		orderResourcePrefix+"{order_id}",
		"Order details",
		mcp.WithTemplateDescription("Yango Tech order with resolved product names"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	srv.AddResourceTemplate(tmpl, s.handleOrderResource)
}

func (s *Server) handleOrderResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	orderID := strings.TrimPrefix(req.Params.URI, orderResourcePrefix)
	if orderID == "" || orderID == req.Params.URI {
		return nil, fmt.Errorf("invalid order resource URI: %s", req.Params.URI)
	}

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("read order %s: %w", orderID, err)
	}

	enriched, err := enrich.Order(ctx, order, s.resolver)
	if err != nil {
		return nil, fmt.Errorf("enrich order %s: %w", orderID, err)
	}

	text, err := formatJSON(enriched)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}

package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerPrompts wires the analysis prompts into the MCP server.
func (s *Server) registerPrompts(srv *server.MCPServer) {
	srv.AddPrompt(mcp.NewPrompt("analyze_order",
		mcp.WithPromptDescription("Create a prompt for analyzing a Yango Tech order"),
		mcp.WithArgument("order_id",
			mcp.ArgumentDescription("Order number for analysis"),
			mcp.RequiredArgument(),
		),
	), s.handleAnalyzeOrderPrompt)

	srv.AddPrompt(mcp.NewPrompt("summarize_products",
		mcp.WithPromptDescription("Create a prompt for analyzing the Yango Tech product catalog"),
	), s.handleSummarizeProductsPrompt)
}

func (s *Server) handleAnalyzeOrderPrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	orderID := req.Params.Arguments["order_id"]
	if orderID == "" {
		return nil, fmt.Errorf("order_id argument is required")
	}

	text := fmt.Sprintf("Analyze the status of order %s from Yango Tech and provide detailed "+
		"recommendations for further actions. Consider all available order data.", orderID)

	return mcp.NewGetPromptResult(
		"Order analysis",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleSummarizeProductsPrompt(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := "Analyze the Yango Tech product catalog and create a brief report on categories, " +
		"popularity and recommendations for assortment optimization."

	return mcp.NewGetPromptResult(
		"Product catalog analysis",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

package server

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retailops/yango-b2b-mcp/pkg/client"
	"github.com/retailops/yango-b2b-mcp/pkg/enrich"
	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// errValidation builds a caller-error for a bad tool argument so the
// structured payload carries the validation kind.
func errValidation(message string) error {
	return &client.APIError{Kind: client.KindValidation, Message: message}
}

// productView is a product plus its resolved display name, as returned by
// the product tools.
type productView struct {
	models.Product
	DisplayName string `json:"display_name"`
}

// batchPagination describes the position of a batch inside a listing.
type batchPagination struct {
	CurrentCursor *string `json:"current_cursor"`
	NextCursor    *string `json:"next_cursor"`
	HasMore       bool    `json:"has_more"`
	TotalCount    int     `json:"total_count"`
	Showing       int     `json:"showing"`
}

// registerTools wires the six B2B API tools into the MCP server.
func (s *Server) registerTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("get_order_details",
		mcp.WithDescription("Get detailed information about a Yango Tech order by number. "+
			"Use for queries like 'show order', 'order details', 'full order information'. "+
			"Supports order numbers in format 240920-728268. Returns the order with product names."),
		mcp.WithString("order_id",
			mcp.Required(),
			mcp.Description("Yango Tech order number (e.g. 240920-728268)"),
		),
	), s.handleGetOrderDetails)

	srv.AddTool(mcp.NewTool("get_order_status",
		mcp.WithDescription("Get the current status of a Yango Tech order. "+
			"Use for queries like 'order status', 'where is order', 'check order'."),
		mcp.WithString("order_id",
			mcp.Required(),
			mcp.Description("Yango Tech order number (e.g. 240920-728268)"),
		),
	), s.handleGetOrderStatus)

	srv.AddTool(mcp.NewTool("get_all_products",
		mcp.WithDescription("Get the complete Yango Tech product catalog with display names. "+
			"Use for queries like 'all products', 'entire catalog', 'list all products'."),
	), s.handleGetAllProducts)

	srv.AddTool(mcp.NewTool("get_products_batch",
		mcp.WithDescription("Get Yango Tech products with pagination. "+
			"Use for queries like 'show N products', 'first products', 'products by pages'."),
		mcp.WithString("cursor",
			mcp.Description("Starting index for pagination, from a previous response"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of products to retrieve (default 100, maximum 1000)"),
		),
	), s.handleGetProductsBatch)

	srv.AddTool(mcp.NewTool("get_all_stocks",
		mcp.WithDescription("Get all Yango Tech product stocks in warehouses with product names. "+
			"Use for queries like 'all stocks', 'what is in warehouse', 'product availability'."),
	), s.handleGetAllStocks)

	srv.AddTool(mcp.NewTool("get_stocks_batch",
		mcp.WithDescription("Get Yango Tech product stocks with pagination and product names. "+
			"Use for queries like 'show stocks', 'how much product', 'stocks by stores'."),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor obtained from a previous response"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of stock records to retrieve (default 100, maximum 1000)"),
		),
	), s.handleGetStocksBatch)
}

func (s *Server) handleGetOrderDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orderID, err := req.RequireString("order_id")
	if err != nil || orderID == "" {
		return mcp.NewToolResultError(formatError(errValidation("order_id is required"))), nil
	}

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	enriched, err := enrich.Order(ctx, order, s.resolver)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	text, err := formatJSON(enriched)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Order details %s:\n%s", orderID, text)), nil
}

func (s *Server) handleGetOrderStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orderID, err := req.RequireString("order_id")
	if err != nil || orderID == "" {
		return mcp.NewToolResultError(formatError(errValidation("order_id is required"))), nil
	}

	status, err := s.api.GetOrderStatus(ctx, orderID)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Order status %s: %s", orderID, status)), nil
}

func (s *Server) handleGetAllProducts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	views := s.productViews(products)
	text, err := formatJSON(views)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Retrieved %d products:\n%s", len(views), text)), nil
}

func (s *Server) handleGetProductsBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cursor := req.GetString("cursor", "")
	limit := clampLimit(req.GetInt("limit", 100))

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	// The catalog listing is served from the provider snapshot, so the
	// cursor is a plain start index into it. An unparsable cursor restarts
	// from the beginning rather than failing the call.
	start := 0
	if cursor != "" {
		if n, err := strconv.Atoi(cursor); err == nil && n > 0 {
			start = n
		}
	}
	if start > len(products) {
		start = len(products)
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}

	views := s.productViews(products[start:end])

	var nextCursor *string
	if end < len(products) {
		next := strconv.Itoa(end)
		nextCursor = &next
	}
	var currentCursor *string
	if cursor != "" {
		currentCursor = &cursor
	}

	result := struct {
		Products   []productView   `json:"products"`
		Pagination batchPagination `json:"pagination"`
	}{
		Products: views,
		Pagination: batchPagination{
			CurrentCursor: currentCursor,
			NextCursor:    nextCursor,
			HasMore:       end < len(products),
			TotalCount:    len(products),
			Showing:       len(views),
		},
	}

	text, err := formatJSON(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Product batch (limit: %d, retrieved: %d):\n%s", limit, len(views), text)), nil
}

func (s *Server) handleGetAllStocks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stocks, err := s.api.GetAllStocks(ctx)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	enriched, err := enrich.Stocks(ctx, stocks, s.resolver)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	text, err := formatJSON(enriched)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Retrieved %d stocks:\n%s", len(enriched), text)), nil
}

func (s *Server) handleGetStocksBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cursorStr := req.GetString("cursor", "")
	limit := clampLimit(req.GetInt("limit", 100))

	var cursor *string
	if cursorStr != "" {
		cursor = &cursorStr
	}

	page, err := s.api.GetStocksPage(ctx, cursor, limit)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	enriched, err := enrich.Stocks(ctx, page.Items, s.resolver)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	result := struct {
		Stocks     []models.Stock `json:"stocks"`
		Pagination struct {
			Cursor         *string `json:"cursor"`
			HasMore        bool    `json:"has_more"`
			TotalRetrieved int     `json:"total_retrieved"`
		} `json:"pagination"`
	}{
		Stocks: enriched,
	}
	result.Pagination.Cursor = page.NextCursor
	result.Pagination.HasMore = page.HasMore
	result.Pagination.TotalRetrieved = len(enriched)

	text, err := formatJSON(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Stock batch (limit: %d, retrieved: %d):\n%s", limit, len(enriched), text)), nil
}

// productViews resolves display names for a slice of products.
func (s *Server) productViews(products []models.Product) []productView {
	views := make([]productView, len(products))
	for i := range products {
		views[i] = productView{
			Product:     products[i],
			DisplayName: products[i].DisplayName(s.language),
		}
	}
	return views
}

// clampLimit bounds a caller-supplied page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/retailops/yango-b2b-mcp/pkg/client"
	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// fakeAPI implements the API interface with fixture data.
type fakeAPI struct {
	order  *models.Order
	status string
	stocks []models.Stock
	err    error
}

func (f *fakeAPI) GetOrder(_ context.Context, orderID string) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.order == nil || f.order.ID() != orderID {
		return nil, &client.APIError{Kind: client.KindNotFound, StatusCode: 404, Message: "order not found"}
	}
	return f.order, nil
}

func (f *fakeAPI) GetOrderStatus(_ context.Context, orderID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.order == nil || f.order.ID() != orderID {
		return "", &client.APIError{Kind: client.KindNotFound, StatusCode: 404, Message: "order not found"}
	}
	return f.status, nil
}

func (f *fakeAPI) GetAllStocks(context.Context) ([]models.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stocks, nil
}

func (f *fakeAPI) GetStocksPage(_ context.Context, cursor *string, limit int) (models.Page[models.Stock], error) {
	if f.err != nil {
		return models.Page[models.Stock]{}, f.err
	}
	// Single page regardless of cursor; enough for handler tests.
	return models.Page[models.Stock]{Items: f.stocks}, nil
}

// fakeCatalog implements enrich.ProductLoader.
type fakeCatalog struct {
	products []models.Product
	err      error
}

func (f *fakeCatalog) Products(context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func fixtureCatalog() *fakeCatalog {
	return &fakeCatalog{products: []models.Product{
		{
			ProductID: "P1",
			CustomAttributes: map[string]any{
				"shortNameLoc": map[string]any{"en_EN": "Milk"},
			},
		},
		{ProductID: "P2"},
		{ProductID: "P3"},
	}}
}

func fixtureServer() *Server {
	api := &fakeAPI{
		order: &models.Order{
			HumanOrderID: "240920-728268",
			Cart: models.Cart{
				TotalPrice: "8.20",
				Items: []models.CartItem{
					{ProductID: "P1", Quantity: 2},
					{ProductID: "P9", Quantity: 1},
				},
			},
		},
		status: "delivering",
		stocks: []models.Stock{
			{ProductID: "P1", StoreID: "S1", Quantity: 5},
			{ProductID: "P9", StoreID: "S2", Quantity: 3},
		},
	}
	return New(api, fixtureCatalog(), "en_EN")
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want text", result.Content[0])
	}
	return text.Text
}

func TestHandleGetOrderDetails(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetOrderDetails(context.Background(), toolRequest(map[string]any{"order_id": "240920-728268"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "Order details 240920-728268:") {
		t.Errorf("unexpected prefix: %q", text)
	}
	if !strings.Contains(text, `"product_name": "Milk"`) {
		t.Errorf("resolved name missing from output:\n%s", text)
	}
	if !strings.Contains(text, `"product_name": "unknown"`) {
		t.Errorf("sentinel missing for uncataloged product:\n%s", text)
	}
}

func TestHandleGetOrderDetailsNotFound(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetOrderDetails(context.Background(), toolRequest(map[string]any{"order_id": "999999-999999"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing order")
	}

	var payload errorPayload
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if payload.Error.Kind != "not_found" {
		t.Errorf("error kind = %q, want not_found", payload.Error.Kind)
	}
	if payload.Error.Message == "" {
		t.Error("error message is empty")
	}
}

func TestHandleGetOrderDetailsMissingArgument(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetOrderDetails(context.Background(), toolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing order_id")
	}

	var payload errorPayload
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if payload.Error.Kind != "validation" {
		t.Errorf("error kind = %q, want validation", payload.Error.Kind)
	}
}

func TestHandleGetOrderStatus(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetOrderStatus(context.Background(), toolRequest(map[string]any{"order_id": "240920-728268"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got := resultText(t, result); got != "Order status 240920-728268: delivering" {
		t.Errorf("output = %q", got)
	}
}

func TestHandleGetAllProducts(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetAllProducts(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "Retrieved 3 products:") {
		t.Errorf("unexpected prefix: %q", text)
	}
	if !strings.Contains(text, `"display_name": "Milk"`) {
		t.Errorf("display name missing:\n%s", text)
	}
	// Nameless catalog products fall back to their id.
	if !strings.Contains(text, `"display_name": "P2"`) {
		t.Errorf("id fallback missing:\n%s", text)
	}
}

func TestHandleGetProductsBatch(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetProductsBatch(context.Background(), toolRequest(map[string]any{"limit": float64(2)}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	text := resultText(t, result)
	body := text[strings.Index(text, "\n")+1:]

	var parsed struct {
		Products   []map[string]any `json:"products"`
		Pagination struct {
			CurrentCursor *string `json:"current_cursor"`
			NextCursor    *string `json:"next_cursor"`
			HasMore       bool    `json:"has_more"`
			TotalCount    int     `json:"total_count"`
			Showing       int     `json:"showing"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		t.Fatalf("batch payload is not JSON: %v\n%s", err, body)
	}

	if len(parsed.Products) != 2 {
		t.Fatalf("first batch has %d products, want 2", len(parsed.Products))
	}
	if !parsed.Pagination.HasMore || parsed.Pagination.NextCursor == nil || *parsed.Pagination.NextCursor != "2" {
		t.Errorf("pagination = %+v", parsed.Pagination)
	}
	if parsed.Pagination.TotalCount != 3 || parsed.Pagination.Showing != 2 {
		t.Errorf("pagination counts = %+v", parsed.Pagination)
	}

	// Follow the cursor to the final batch.
	result, err = srv.handleGetProductsBatch(context.Background(), toolRequest(map[string]any{
		"cursor": *parsed.Pagination.NextCursor,
		"limit":  float64(2),
	}))
	if err != nil {
		t.Fatalf("second batch error = %v", err)
	}
	body = resultText(t, result)
	body = body[strings.Index(body, "\n")+1:]
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		t.Fatalf("second batch payload is not JSON: %v", err)
	}
	if len(parsed.Products) != 1 || parsed.Pagination.HasMore || parsed.Pagination.NextCursor != nil {
		t.Errorf("final batch = %d products, pagination %+v", len(parsed.Products), parsed.Pagination)
	}
}

func TestHandleGetAllStocks(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetAllStocks(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "Retrieved 2 stocks:") {
		t.Errorf("unexpected prefix: %q", text)
	}
	if !strings.Contains(text, `"product_name": "Milk"`) {
		t.Errorf("resolved name missing:\n%s", text)
	}
	if !strings.Contains(text, `"product_name": "unknown"`) {
		t.Errorf("sentinel missing:\n%s", text)
	}
}

func TestHandleGetStocksBatch(t *testing.T) {
	srv := fixtureServer()

	result, err := srv.handleGetStocksBatch(context.Background(), toolRequest(map[string]any{"limit": float64(10)}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	text := resultText(t, result)
	body := text[strings.Index(text, "\n")+1:]

	var parsed struct {
		Stocks     []map[string]any `json:"stocks"`
		Pagination struct {
			Cursor         *string `json:"cursor"`
			HasMore        bool    `json:"has_more"`
			TotalRetrieved int     `json:"total_retrieved"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		t.Fatalf("batch payload is not JSON: %v\n%s", err, body)
	}
	if len(parsed.Stocks) != 2 || parsed.Pagination.TotalRetrieved != 2 || parsed.Pagination.HasMore {
		t.Errorf("batch = %d stocks, pagination %+v", len(parsed.Stocks), parsed.Pagination)
	}
}

func TestHandleAnalyzeOrderPrompt(t *testing.T) {
	srv := fixtureServer()

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"order_id": "240920-728268"}

	result, err := srv.handleAnalyzeOrderPrompt(context.Background(), req)
	if err != nil {
		t.Fatalf("prompt error = %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("prompt has %d messages, want 1", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("prompt content is %T, want TextContent", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "240920-728268") {
		t.Errorf("prompt text missing order id: %q", text.Text)
	}

	req.Params.Arguments = map[string]string{}
	if _, err := srv.handleAnalyzeOrderPrompt(context.Background(), req); err == nil {
		t.Error("prompt accepted missing order_id")
	}
}

func TestHandleOrderResource(t *testing.T) {
	srv := fixtureServer()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "yango://orders/240920-728268"

	contents, err := srv.handleOrderResource(context.Background(), req)
	if err != nil {
		t.Fatalf("resource error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("resource has %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("resource contents is %T, want TextResourceContents", contents[0])
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIME type = %q", text.MIMEType)
	}
	if !strings.Contains(text.Text, `"product_name": "Milk"`) {
		t.Errorf("resource missing enriched name:\n%s", text.Text)
	}

	req.Params.URI = "yango://stores/S1"
	if _, err := srv.handleOrderResource(context.Background(), req); err == nil {
		t.Error("resource accepted foreign URI")
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 100},
		{-5, 100},
		{50, 50},
		{1000, 1000},
		{5000, 1000},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

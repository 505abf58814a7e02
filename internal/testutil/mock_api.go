// Package testutil provides testing utilities for the Yango Tech B2B client.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock Yango Tech B2B API server for testing.
// By default it serves the fixture catalog, stocks, and orders with
// cursor pagination; individual endpoints can be overridden per test.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	products []models.Product
	stocks   []models.Stock
	orders   map[string]models.Order
	states   map[string]string

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	LastRequestBody   []byte
}

// NewMockAPI creates a new mock B2B API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		orders:   make(map[string]models.Order),
		states:   make(map[string]string),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.LastRequestBody = body
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r, body)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.LastRequestBody = nil
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// SetProducts loads the product fixture served by /products/query.
func (m *MockAPI) SetProducts(products []models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

// SetStocks loads the stock fixture served by /stocks/query.
func (m *MockAPI) SetStocks(stocks []models.Stock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stocks = stocks
}

// SetOrder loads an order fixture served by /orders/get and /orders/state.
func (m *MockAPI) SetOrder(order models.Order, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID()] = order
	m.states[order.ID()] = state
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// defaultHandler serves the fixture data with cursor pagination.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		OrderID string   `json:"order_id"`
		Orders  []string `json:"orders"`
		Cursor  *string  `json:"cursor"`
		Limit   int      `json:"limit"`
	}
	json.Unmarshal(body, &req)

	m.mu.RLock()
	defer m.mu.RUnlock()

	switch r.URL.Path {
	case "/b2b/v1/orders/get":
		order, ok := m.orders[req.OrderID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "order not found"}`))
			return
		}
		json.NewEncoder(w).Encode(order)

	case "/b2b/v1/orders/state":
		results := make([]map[string]any, 0, len(req.Orders))
		for _, id := range req.Orders {
			state, ok := m.states[id]
			if !ok {
				results = append(results, map[string]any{"query_result": "not_found"})
				continue
			}
			results = append(results, map[string]any{"query_result": "success", "state": state})
		}
		json.NewEncoder(w).Encode(map[string]any{"query_results": results})

	case "/b2b/v1/products/query":
		items, next := paginate(m.products, req.Cursor, req.Limit)
		json.NewEncoder(w).Encode(map[string]any{"products": items, "cursor": next})

	case "/b2b/v1/stocks/query":
		items, next := paginate(m.stocks, req.Cursor, req.Limit)
		json.NewEncoder(w).Encode(map[string]any{"stocks": items, "cursor": next})

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "unknown endpoint"}`))
	}
}

// paginate slices a fixture with index-based cursors the way the real API
// chains opaque ones.
func paginate[T any](items []T, cursor *string, limit int) ([]T, *string) {
	if limit <= 0 {
		limit = 100
	}
	start := 0
	if cursor != nil {
		if n, err := strconv.Atoi(*cursor); err == nil && n > 0 {
			start = n
		}
	}
	if start >= len(items) {
		return []T{}, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]
	if end >= len(items) {
		return page, nil
	}
	next := strconv.Itoa(end)
	return page, &next
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"message": "rate limit exceeded"}`,
		Headers:    map[string]string{"Retry-After": "1"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message": "internal server error"}`,
	}
}

// NewUnauthorizedResponse creates a 401 Unauthorized response.
func NewUnauthorizedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"message": "invalid api key"}`,
	}
}

// FixtureProducts returns a small catalog used across tests.
func FixtureProducts() []models.Product {
	return []models.Product{
		{
			ProductID:      "P1",
			MasterCategory: "dairy",
			Status:         "active",
			CustomAttributes: map[string]any{
				"shortNameLoc": map[string]any{"en_EN": "Milk", "ru_RU": "Молоко"},
			},
		},
		{
			ProductID:      "P2",
			MasterCategory: "bakery",
			Status:         "active",
			CustomAttributes: map[string]any{
				"longName": map[string]any{"en_EN": "Whole Grain Bread"},
			},
		},
		{
			ProductID:      "P3",
			MasterCategory: "produce",
			Status:         "active",
		},
	}
}

// FixtureStocks returns stock records matching FixtureProducts plus one
// product absent from the catalog.
func FixtureStocks() []models.Stock {
	return []models.Stock{
		{ProductID: "P1", StoreID: "S1", Quantity: 25},
		{ProductID: "P2", StoreID: "S1", Quantity: 10},
		{ProductID: "P9", StoreID: "S2", Quantity: 3},
	}
}

// FixtureOrder returns an order fixture with two cart items.
func FixtureOrder() models.Order {
	return models.Order{
		HumanOrderID: "240920-728268",
		StoreID:      "S1",
		PaymentType:  "card",
		Cart: models.Cart{
			Items: []models.CartItem{
				{ProductID: "P1", Quantity: 2, Price: "3.50"},
				{ProductID: "P9", Quantity: 1, Price: "1.20"},
			},
			TotalPrice: "8.20",
		},
	}
}

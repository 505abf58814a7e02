package client

import (
	"context"
	"fmt"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// GetOrder fetches the full order record by its human-readable number.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, newValidationError("order id must not be empty")
	}

	raw, err := c.do(ctx, EndpointOrderGet, map[string]any{"order_id": orderID})
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := models.DecodeStrict(raw, &order); err != nil {
		return nil, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	if err := order.Validate(); err != nil {
		return nil, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	return &order, nil
}

// orderStateResponse is the shape of the orders/state endpoint response.
type orderStateResponse struct {
	QueryResults []struct {
		QueryResult string `json:"query_result"`
		State       string `json:"state"`
	} `json:"query_results"`
}

// GetOrderStatus fetches the current state of an order.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", newValidationError("order id must not be empty")
	}

	raw, err := c.do(ctx, EndpointOrderState, map[string]any{"orders": []string{orderID}})
	if err != nil {
		return "", err
	}

	var resp orderStateResponse
	if err := models.DecodeStrict(raw, &resp); err != nil {
		return "", &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	if len(resp.QueryResults) == 0 {
		return "", &APIError{Kind: KindValidation, Message: "orders/state returned no query results"}
	}

	result := resp.QueryResults[0]
	if result.QueryResult != "success" {
		return "", &APIError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("order %s state lookup failed: %s", orderID, result.QueryResult),
		}
	}
	if result.State == "" {
		return "unknown", nil
	}
	return result.State, nil
}

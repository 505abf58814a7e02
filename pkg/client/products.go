package client

import (
	"context"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
	"github.com/retailops/yango-b2b-mcp/pkg/pagination"
)

// productsQueryResponse is the shape of the products/query endpoint response.
type productsQueryResponse struct {
	Products []models.Product `json:"products"`
	Cursor   *string          `json:"cursor,omitempty"`
}

// GetProductsPage fetches one page of the product catalog. A nil cursor
// requests the first page.
func (c *Client) GetProductsPage(ctx context.Context, cursor *string, limit int) (models.Page[models.Product], error) {
	if limit <= 0 || limit > 1000 {
		limit = c.config.PageLimit
	}

	raw, err := c.do(ctx, EndpointProductsQuery, map[string]any{
		"cursor": cursor,
		"limit":  limit,
	})
	if err != nil {
		return models.Page[models.Product]{}, err
	}

	var resp productsQueryResponse
	if err := models.DecodeStrict(raw, &resp); err != nil {
		return models.Page[models.Product]{}, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	for i := range resp.Products {
		if err := resp.Products[i].Validate(); err != nil {
			return models.Page[models.Product]{}, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
		}
	}

	next := resp.Cursor
	if next != nil && *next == "" {
		next = nil
	}
	return models.Page[models.Product]{
		Items:      resp.Products,
		NextCursor: next,
		HasMore:    next != nil && len(resp.Products) > 0,
	}, nil
}

// GetAllProducts walks the full product catalog with cursor pagination.
func (c *Client) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) (models.Page[models.Product], error) {
		return c.GetProductsPage(ctx, cursor, c.config.PageLimit)
	}, c.config.MaxPages)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("products", len(products)).
		Msg("Loaded product catalog")
	return products, nil
}

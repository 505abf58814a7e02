package client

import (
	"context"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
	"github.com/retailops/yango-b2b-mcp/pkg/pagination"
)

// stocksQueryResponse is the shape of the stocks/query endpoint response.
type stocksQueryResponse struct {
	Stocks []models.Stock `json:"stocks"`
	Cursor *string        `json:"cursor,omitempty"`
}

// GetStocksPage fetches one page of warehouse stock records. A nil cursor
// requests the first page.
func (c *Client) GetStocksPage(ctx context.Context, cursor *string, limit int) (models.Page[models.Stock], error) {
	if limit <= 0 || limit > 1000 {
		limit = c.config.PageLimit
	}

	raw, err := c.do(ctx, EndpointStocksQuery, map[string]any{
		"cursor": cursor,
		"limit":  limit,
	})
	if err != nil {
		return models.Page[models.Stock]{}, err
	}

	var resp stocksQueryResponse
	if err := models.DecodeStrict(raw, &resp); err != nil {
		return models.Page[models.Stock]{}, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	for i := range resp.Stocks {
		if err := resp.Stocks[i].Validate(); err != nil {
			return models.Page[models.Stock]{}, &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
		}
	}

	next := resp.Cursor
	if next != nil && *next == "" {
		next = nil
	}
	return models.Page[models.Stock]{
		Items:      resp.Stocks,
		NextCursor: next,
		HasMore:    next != nil && len(resp.Stocks) > 0,
	}, nil
}

// GetAllStocks walks all warehouse stock records with cursor pagination.
func (c *Client) GetAllStocks(ctx context.Context) ([]models.Stock, error) {
	stocks, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) (models.Page[models.Stock], error) {
		return c.GetStocksPage(ctx, cursor, c.config.PageLimit)
	}, c.config.MaxPages)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("stocks", len(stocks)).
		Msg("Loaded stock records")
	return stocks, nil
}

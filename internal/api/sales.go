package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

type SalesItemRequest struct {
	ItemID        int64   `json:"itemId"`
	SalePrice     float64 `json:"salePrice"`
	SaleStartDate string  `json:"saleStartDate"`
	SaleEndDate   string  `json:"saleEndDate"`
}

func (c *Client) SalesItems(ctx context.Context) ([]domain.SalesItem, error) {
	return requestData[[]domain.SalesItem](ctx, c, http.MethodGet, "/api/sales", nil, nil)
}

func (c *Client) SalesItemByID(ctx context.Context, id int64) (*domain.SalesItem, error) {
	item, err := requestData[domain.SalesItem](ctx, c, http.MethodGet, fmt.Sprintf("/api/sales/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateSalesItem(ctx context.Context, req SalesItemRequest) (*domain.SalesItem, error) {
	item, err := requestData[domain.SalesItem](ctx, c, http.MethodPost, "/api/sales", nil, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateSalesItem(ctx context.Context, id int64, req SalesItemRequest) (*domain.SalesItem, error) {
	item, err := requestData[domain.SalesItem](ctx, c, http.MethodPut, fmt.Sprintf("/api/sales/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteSalesItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/sales/%d", id), nil, nil)
	return err
}

// ToggleSalesItem flips a sale between active and inactive.
func (c *Client) ToggleSalesItem(ctx context.Context, id int64) (*domain.SalesItem, error) {
	item, err := requestData[domain.SalesItem](ctx, c, http.MethodPut, fmt.Sprintf("/api/sales/%d/toggle", id), nil, struct{}{})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

// ItemQuery narrows the paged item listing. Zero values are omitted from the
// request.
type ItemQuery struct {
	Page     int
	Size     int
	Category string
	Search   string
}

func (q ItemQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

type ItemRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
	ImageURL          string  `json:"imageUrl,omitempty"`
	Category          string  `json:"category,omitempty"`
	SKU               string  `json:"sku,omitempty"`
}

func (c *Client) Items(ctx context.Context, query ItemQuery) ([]domain.Item, *Pagination, error) {
	return requestPaged[domain.Item](ctx, c, http.MethodGet, "/api/items", query.values())
}

func (c *Client) ItemByID(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := requestData[domain.Item](ctx, c, http.MethodGet, fmt.Sprintf("/api/items/%d", itemID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateItem(ctx context.Context, req ItemRequest) (*domain.Item, error) {
	item, err := requestData[domain.Item](ctx, c, http.MethodPost, "/api/items", nil, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, req ItemRequest) (*domain.Item, error) {
	item, err := requestData[domain.Item](ctx, c, http.MethodPut, fmt.Sprintf("/api/items/%d", itemID), nil, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", itemID), nil, nil)
	return err
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PlaceOrder converts the authenticated cart into an order. Pricing, tax,
// discount validation, and inventory checks all happen server-side.
func (c *Client) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	order, err := requestData[domain.Order](ctx, c, http.MethodPost, "/api/orders/place", nil, struct{}{})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the calling user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return requestData[[]domain.Order](ctx, c, http.MethodGet, "/api/orders", nil, nil)
}

func (c *Client) OrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := requestData[domain.Order](ctx, c, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus is admin-only server-side.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error) {
	order, err := requestData[domain.Order](ctx, c, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), nil, updateOrderStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return requestData[[]domain.Order](ctx, c, http.MethodGet, "/api/orders/admin/all", nil, nil)
}

func (c *Client) OrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return requestData[[]domain.Order](ctx, c, http.MethodGet, fmt.Sprintf("/api/orders/admin/status/%s", status), nil, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

type addItemRequest struct {
	Quantity int `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type changeQuantityRequest struct {
	Amount int `json:"amount"`
}

type applyDiscountRequest struct {
	DiscountCode string `json:"discountCode"`
}

// CartSummary fetches the authoritative cart with server-computed totals.
// Concurrent calls for the same user collapse into one request.
func (c *Client) CartSummary(ctx context.Context, userID int64) (*domain.Cart, error) {
	v, err, _ := c.sfg.Do(fmt.Sprintf("cart-summary:%d", userID), func() (interface{}, error) {
		cart, err := requestBare[domain.Cart](ctx, c, http.MethodGet, fmt.Sprintf("/api/cart/%d/summary", userID), nil, nil)
		if err != nil {
			return nil, err
		}
		return &cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddCartItem adds (or increments) a line item in the server-side cart.
func (c *Client) AddCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cart/%d/items/%d", userID, itemID), nil, addItemRequest{Quantity: quantity})
	return err
}

func (c *Client) UpdateCartQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d/items/%d", userID, itemID), nil, updateQuantityRequest{Quantity: quantity})
	return err
}

func (c *Client) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d/items/%d", userID, itemID), nil, nil)
	return err
}

func (c *Client) ClearCart(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", userID), nil, nil)
	return err
}

func (c *Client) IncreaseCartQuantity(ctx context.Context, userID, itemID int64, amount int) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cart/%d/items/%d/increase", userID, itemID), nil, changeQuantityRequest{Amount: amount})
	return err
}

func (c *Client) DecreaseCartQuantity(ctx context.Context, userID, itemID int64, amount int) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cart/%d/items/%d/decrease", userID, itemID), nil, changeQuantityRequest{Amount: amount})
	return err
}

// ApplyCartDiscount asks the backend to validate and apply a discount code.
// Unlike the guest cart's client-side arithmetic, this path is validated.
func (c *Client) ApplyCartDiscount(ctx context.Context, userID int64, code string) (*domain.Cart, error) {
	cart, err := requestBare[domain.Cart](ctx, c, http.MethodPost, fmt.Sprintf("/api/cart/%d/discount", userID), nil, applyDiscountRequest{DiscountCode: code})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

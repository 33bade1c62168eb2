package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

type UpdateUserRequest struct {
	FullName string `json:"fullName,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

type DiscountCodeRequest struct {
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discountPercentage"`
	ExpiryDate         string  `json:"expiryDate,omitempty"`
	Active             *bool   `json:"active,omitempty"`
}

// AdminUsers lists registered users, paged.
func (c *Client) AdminUsers(ctx context.Context, page, size int) ([]domain.Profile, *Pagination, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	return requestPaged[domain.Profile](ctx, c, http.MethodGet, "/api/admin/users", query)
}

func (c *Client) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) (*domain.Profile, error) {
	profile, err := requestBare[domain.Profile](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", userID), nil, req)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ActivateUser(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/activate", userID), nil, struct{}{})
	return err
}

func (c *Client) DeactivateUser(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/deactivate", userID), nil, struct{}{})
	return err
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), nil, nil)
	return err
}

func (c *Client) SetUserRole(ctx context.Context, userID int64, role string) error {
	query := url.Values{}
	query.Set("role", role)
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/role", userID), query, struct{}{})
	return err
}

func (c *Client) DiscountCodes(ctx context.Context) ([]domain.DiscountCode, error) {
	return requestData[[]domain.DiscountCode](ctx, c, http.MethodGet, "/api/admin/discount-codes", nil, nil)
}

func (c *Client) CreateDiscountCode(ctx context.Context, req DiscountCodeRequest) (*domain.DiscountCode, error) {
	code, err := requestBare[domain.DiscountCode](ctx, c, http.MethodPost, "/api/admin/discount-codes", nil, req)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) UpdateDiscountCode(ctx context.Context, id int64, req DiscountCodeRequest) (*domain.DiscountCode, error) {
	code, err := requestBare[domain.DiscountCode](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/discount-codes/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) DeleteDiscountCode(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/discount-codes/%d", id), nil, nil)
	return err
}

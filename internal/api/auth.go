package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	user, err := requestData[domain.User](ctx, c, http.MethodPost, "/api/auth/register", nil, req)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for the user record and a bearer token. It does
// not persist the token or touch the guest cart; that orchestration belongs
// to the caller (see reconcile).
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	result, err := requestData[domain.LoginResult](ctx, c, http.MethodPost, "/api/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Profile(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := requestData[domain.Profile](ctx, c, http.MethodGet, fmt.Sprintf("/api/auth/profile/%d", userID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := requestData[domain.Profile](ctx, c, http.MethodPut, fmt.Sprintf("/api/auth/profile/%d", userID), nil, req)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/auth/change-password/%d", userID), nil, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	return err
}

package domain

import "github.com/hugoev/Ecommerce-Platform-sub000/internal/dates"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Profile is the fuller user record returned by the profile and admin-users
// endpoints.
type Profile struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	FullName  string          `json:"fullName"`
	Role      string          `json:"role"`
	CreatedAt dates.Timestamp `json:"createdAt"`
	IsActive  bool            `json:"isActive"`
	Address   string          `json:"address,omitempty"`
	Phone     string          `json:"phone,omitempty"`
}

// LoginResult is the payload of a successful login: the authenticated user
// plus the bearer token to attach to subsequent requests.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

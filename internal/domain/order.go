package domain

import "github.com/hugoev/Ecommerce-Platform-sub000/internal/dates"

type OrderItem struct {
	ItemID          int64   `json:"itemId"`
	ItemName        string  `json:"itemName"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Order is a placed order as returned by the backend. OrderDate is
// canonicalized at decode time; the backend serializes it in several
// incompatible shapes.
type Order struct {
	ID                  int64           `json:"id"`
	OrderDate           dates.Timestamp `json:"orderDate"`
	Status              string          `json:"status"`
	Subtotal            float64         `json:"subtotal"`
	Tax                 float64         `json:"tax"`
	DiscountAmount      float64         `json:"discountAmount"`
	AppliedDiscountCode string          `json:"appliedDiscountCode,omitempty"`
	Total               float64         `json:"total"`
	Username            string          `json:"username"`
	Items               []OrderItem     `json:"items"`
}

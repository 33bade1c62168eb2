// Package domain holds the wire shapes of the storefront backend. All pricing,
// tax, and discount math behind these fields is computed server-side; the
// client consumes the values as given.
package domain

type CartItem struct {
	ItemID    int64   `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

// Cart is the authoritative server-side cart for a logged-in user.
type Cart struct {
	Items               []CartItem `json:"items"`
	Subtotal            float64    `json:"subtotal"`
	Tax                 float64    `json:"tax"`
	DiscountAmount      float64    `json:"discountAmount"`
	AppliedDiscountCode string     `json:"appliedDiscountCode,omitempty"`
	Total               float64    `json:"total"`
}

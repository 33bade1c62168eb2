package domain

import "github.com/hugoev/Ecommerce-Platform-sub000/internal/dates"

type Item struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
	ImageURL          string  `json:"imageUrl,omitempty"`
	Category          string  `json:"category,omitempty"`
	SKU               string  `json:"sku,omitempty"`
}

// SalesItem is an item on promotion. Sale window dates share the order-date
// encoding quirks and are canonicalized at decode time.
type SalesItem struct {
	ID                 int64           `json:"id"`
	ItemID             int64           `json:"itemId"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	OriginalPrice      float64         `json:"originalPrice"`
	SalePrice          float64         `json:"salePrice"`
	DiscountPercentage float64         `json:"discountPercentage"`
	QuantityAvailable  int             `json:"quantityAvailable"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Category           string          `json:"category,omitempty"`
	SKU                string          `json:"sku,omitempty"`
	SaleStartDate      dates.Timestamp `json:"saleStartDate"`
	SaleEndDate        dates.Timestamp `json:"saleEndDate"`
	IsActive           bool            `json:"isActive"`
}

type DiscountCode struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	DiscountPercentage float64         `json:"discountPercentage"`
	ExpiryDate         dates.Timestamp `json:"expiryDate"`
	Active             bool            `json:"active"`
	CreatedAt          dates.Timestamp `json:"createdAt"`
}

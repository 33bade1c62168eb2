// Package guestcart maintains the locally persisted cart for visitors without
// an authenticated session. All durable carts live server-side; this store
// only bridges the gap until login, when its contents are transferred by the
// reconcile package.
package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/storage"
)

// DefaultKey is the single storage key the cart snapshot lives under.
const DefaultKey = "guest_cart"

// TaxRate matches the flat 8.25% the backend applies to authenticated carts.
const TaxRate = 0.0825

var timeNow = time.Now

// Item is one product line in the guest cart. ItemID is the identity key;
// adding an existing item increments its quantity instead of appending.
type Item struct {
	ItemID    int64     `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"price"`
	LineTotal float64   `json:"lineTotal"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart is the persisted snapshot. Totals are re-derived from scratch after
// every mutation rather than patched incrementally.
type Cart struct {
	Items          []Item    `json:"items"`
	Subtotal       float64   `json:"subtotal"`
	Tax            float64   `json:"tax"`
	DiscountAmount float64   `json:"discountAmount"`
	DiscountCode   string    `json:"appliedDiscountCode,omitempty"`
	Total          float64   `json:"total"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Store performs CRUD over the single cart instance behind an injected
// storage port. Operations are synchronous and never return errors: an
// unreadable cart reads as missing, and failed writes are logged and
// swallowed so the caller's flow is never blocked on local persistence.
type Store struct {
	kv  storage.Store
	key string
}

func New(kv storage.Store) *Store {
	return NewWithKey(kv, DefaultKey)
}

// NewWithKey allows namespaced keys when the backing store is shared across
// sessions (e.g. redis keyed by guest session id).
func NewWithKey(kv storage.Store, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Get returns the current cart snapshot, or nil when none is persisted.
func (s *Store) Get(ctx context.Context) *Cart {
	return s.load(ctx)
}

// AddItem appends a new line item, or increments the quantity of an existing
// one. The cart is created lazily on the first add.
func (s *Store) AddItem(ctx context.Context, itemID int64, itemName string, unitPrice float64, quantity int) *Cart {
	cart := s.load(ctx)
	if cart == nil {
		cart = &Cart{LastUpdated: timeNow()}
	}

	if existing := findItem(cart, itemID); existing != nil {
		existing.Quantity += quantity
		existing.LineTotal = round2(existing.UnitPrice * float64(existing.Quantity))
	} else {
		cart.Items = append(cart.Items, Item{
			ItemID:    itemID,
			ItemName:  itemName,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: round2(unitPrice * float64(quantity)),
			AddedAt:   timeNow(),
		})
	}

	s.recomputeAndSave(ctx, cart)
	return cart
}

// UpdateQuantity sets the quantity of an existing line item. Non-positive
// quantities remove the item. Returns nil when the cart or item is missing.
func (s *Store) UpdateQuantity(ctx context.Context, itemID int64, quantity int) *Cart {
	cart := s.load(ctx)
	if cart == nil {
		return nil
	}

	item := findItem(cart, itemID)
	if item == nil {
		return nil
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	item.Quantity = quantity
	item.LineTotal = round2(item.UnitPrice * float64(quantity))

	s.recomputeAndSave(ctx, cart)
	return cart
}

// RemoveItem filters the line item out by id. Returns nil when no cart exists.
func (s *Store) RemoveItem(ctx context.Context, itemID int64) *Cart {
	cart := s.load(ctx)
	if cart == nil {
		return nil
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	s.recomputeAndSave(ctx, cart)
	return cart
}

// ApplyDiscount records a discount code and its percentage off the subtotal.
// Code authenticity is not checked here; validation happens server-side on
// the authenticated path only.
func (s *Store) ApplyDiscount(ctx context.Context, code string, percentage float64) *Cart {
	cart := s.load(ctx)
	if cart == nil {
		return nil
	}

	cart.DiscountCode = code
	cart.DiscountAmount = round2(cart.Subtotal * percentage / 100)

	s.recomputeAndSave(ctx, cart)
	return cart
}

// Clear erases the persisted cart entirely; the storage key is removed, not
// emptied.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		log.Printf("guestcart: failed to clear cart: %v", err)
	}
}

// HasItems reports whether a persisted cart with at least one line exists.
func (s *Store) HasItems(ctx context.Context) bool {
	cart := s.load(ctx)
	return cart != nil && len(cart.Items) > 0
}

// ItemCount returns the number of line items (not total quantity).
func (s *Store) ItemCount(ctx context.Context) int {
	cart := s.load(ctx)
	if cart == nil {
		return 0
	}
	return len(cart.Items)
}

func (s *Store) load(ctx context.Context) *Cart {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("guestcart: failed to load cart: %v", err)
		}
		return nil
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupted snapshot reads as no cart; the UI must not crash on it.
		log.Printf("guestcart: corrupted cart snapshot: %v", err)
		return nil
	}
	return &cart
}

func (s *Store) recomputeAndSave(ctx context.Context, cart *Cart) {
	recompute(cart)

	data, err := json.Marshal(cart)
	if err != nil {
		log.Printf("guestcart: failed to encode cart: %v", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		log.Printf("guestcart: failed to persist cart: %v", err)
	}
}

func recompute(cart *Cart) {
	var subtotal float64
	for _, item := range cart.Items {
		subtotal += item.LineTotal
	}
	cart.Subtotal = round2(subtotal)
	cart.Tax = round2(cart.Subtotal * TaxRate)
	cart.Total = round2(cart.Subtotal + cart.Tax - cart.DiscountAmount)
	cart.LastUpdated = timeNow()
}

func findItem(cart *Cart, itemID int64) *Item {
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

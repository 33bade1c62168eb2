// Package reconcile transfers guest cart contents into the authenticated cart
// after a successful login. The transfer is a non-critical side effect of
// login: it is sequential, best-effort, never rolled back, and never allowed
// to fail the login itself. Losing a line item on a failed transfer is
// preferable to blocking account access.
package reconcile

import (
	"context"
	"log"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/guestcart"
)

// CartAdder is the one backend operation reconciliation needs.
type CartAdder interface {
	AddCartItem(ctx context.Context, userID, itemID int64, quantity int) error
}

// Result reports the per-item outcome of a merge so callers can surface a
// partial-failure notice without ever blocking on one.
type Result struct {
	Transferred []int64
	Failed      []int64

	// DroppedDiscountCode is any guest-applied code that was NOT carried over.
	// Guest discounts are unvalidated client-side arithmetic; replaying one
	// would bypass server validation, so the user re-applies it after login.
	DroppedDiscountCode string
}

// Attempted reports how many line items the merge tried to transfer.
func (r Result) Attempted() int {
	return len(r.Transferred) + len(r.Failed)
}

type Reconciler struct {
	guest *guestcart.Store
	cart  CartAdder
}

func New(guest *guestcart.Store, cart CartAdder) *Reconciler {
	return &Reconciler{guest: guest, cart: cart}
}

// MergeOnLogin runs once per successful login. Items transfer in insertion
// order, one request at a time; an individual failure is logged and skipped.
// The guest cart is cleared afterward regardless of how many transfers
// succeeded. MergeOnLogin never returns an error.
func (r *Reconciler) MergeOnLogin(ctx context.Context, userID int64) Result {
	cart := r.guest.Get(ctx)
	if cart == nil || len(cart.Items) == 0 {
		return Result{}
	}

	result := Result{DroppedDiscountCode: cart.DiscountCode}
	for _, item := range cart.Items {
		if err := r.cart.AddCartItem(ctx, userID, item.ItemID, item.Quantity); err != nil {
			log.Printf("reconcile: failed to transfer item %d (quantity %d): %v", item.ItemID, item.Quantity, err)
			result.Failed = append(result.Failed, item.ItemID)
			continue
		}
		result.Transferred = append(result.Transferred, item.ItemID)
	}

	r.guest.Clear(ctx)

	if len(result.Failed) > 0 {
		log.Printf("reconcile: transferred %d of %d guest cart items", len(result.Transferred), result.Attempted())
	}
	return result
}

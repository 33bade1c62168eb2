package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/guestcart"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/storage"
)

type transferCall struct {
	userID   int64
	itemID   int64
	quantity int
}

type mockCartAdder struct {
	calls   []transferCall
	failFor map[int64]error
}

func (m *mockCartAdder) AddCartItem(_ context.Context, userID, itemID int64, quantity int) error {
	m.calls = append(m.calls, transferCall{userID, itemID, quantity})
	if err, ok := m.failFor[itemID]; ok {
		return err
	}
	return nil
}

func seededGuestCart(t *testing.T) *guestcart.Store {
	t.Helper()
	ctx := context.Background()
	store := guestcart.New(storage.NewMemory())
	store.AddItem(ctx, 1, "Keyboard", 89.99, 2)
	store.AddItem(ctx, 2, "Monitor", 249.50, 1)
	store.AddItem(ctx, 3, "Mouse", 25.00, 4)
	return store
}

func TestMergeOnLogin_TransfersInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	guest := seededGuestCart(t)
	adder := &mockCartAdder{}

	result := New(guest, adder).MergeOnLogin(ctx, 42)

	require.Len(t, adder.calls, 3)
	assert.Equal(t, []transferCall{
		{42, 1, 2},
		{42, 2, 1},
		{42, 3, 4},
	}, adder.calls)
	assert.Equal(t, []int64{1, 2, 3}, result.Transferred)
	assert.Empty(t, result.Failed)
}

func TestMergeOnLogin_BestEffortContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	guest := seededGuestCart(t)
	adder := &mockCartAdder{failFor: map[int64]error{2: errors.New("boom")}}

	result := New(guest, adder).MergeOnLogin(ctx, 42)

	require.Len(t, adder.calls, 3, "a failed transfer must not abort the rest")
	assert.Equal(t, []int64{1, 3}, result.Transferred)
	assert.Equal(t, []int64{2}, result.Failed)
}

func TestMergeOnLogin_ClearsGuestCartUnconditionally(t *testing.T) {
	ctx := context.Background()

	t.Run("all succeed", func(t *testing.T) {
		guest := seededGuestCart(t)
		New(guest, &mockCartAdder{}).MergeOnLogin(ctx, 42)
		assert.False(t, guest.HasItems(ctx))
		assert.Nil(t, guest.Get(ctx))
	})

	t.Run("all fail", func(t *testing.T) {
		guest := seededGuestCart(t)
		adder := &mockCartAdder{failFor: map[int64]error{
			1: errors.New("boom"),
			2: errors.New("boom"),
			3: errors.New("boom"),
		}}

		result := New(guest, adder).MergeOnLogin(ctx, 42)

		assert.Len(t, result.Failed, 3)
		assert.False(t, guest.HasItems(ctx), "guest cart is cleared even when every transfer failed")
	})
}

func TestMergeOnLogin_EmptyOrMissingCartIsNoop(t *testing.T) {
	ctx := context.Background()

	guest := guestcart.New(storage.NewMemory())
	adder := &mockCartAdder{}

	result := New(guest, adder).MergeOnLogin(ctx, 42)

	assert.Empty(t, adder.calls)
	assert.Equal(t, 0, result.Attempted())
}

func TestMergeOnLogin_ReportsDroppedDiscountCode(t *testing.T) {
	ctx := context.Background()
	guest := seededGuestCart(t)
	guest.ApplyDiscount(ctx, "SAVE10", 10)
	adder := &mockCartAdder{}

	result := New(guest, adder).MergeOnLogin(ctx, 42)

	assert.Equal(t, "SAVE10", result.DroppedDiscountCode)
	require.Len(t, adder.calls, 3, "discount is reported, not replayed as a transfer")
}

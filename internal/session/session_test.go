package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/storage"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "42"}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := New(storage.NewMemory())

	assert.Equal(t, "", m.Token(ctx))

	require.NoError(t, m.SetToken(ctx, "abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", m.Token(ctx))
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := New(storage.NewMemory())

	_, ok := m.User(ctx)
	assert.False(t, ok)

	require.NoError(t, m.SetUser(ctx, &domain.User{ID: 42, Username: "alice", Role: "ROLE_USER"}))

	user, ok := m.User(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestLogout_ErasesTokenAndUser_KeepsGuestID(t *testing.T) {
	ctx := context.Background()
	m := New(storage.NewMemory())

	require.NoError(t, m.SetToken(ctx, signedToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, m.SetUser(ctx, &domain.User{ID: 1}))
	guestID := m.GuestID(ctx)

	m.Logout(ctx)

	assert.Equal(t, "", m.Token(ctx))
	_, ok := m.User(ctx)
	assert.False(t, ok)
	assert.Equal(t, guestID, m.GuestID(ctx))
}

func TestLoggedIn(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		m := New(storage.NewMemory())
		assert.False(t, m.LoggedIn(ctx))
	})

	t.Run("valid token", func(t *testing.T) {
		m := New(storage.NewMemory())
		require.NoError(t, m.SetToken(ctx, signedToken(t, time.Now().Add(time.Hour))))
		assert.True(t, m.LoggedIn(ctx))
	})

	t.Run("expired token", func(t *testing.T) {
		m := New(storage.NewMemory())
		require.NoError(t, m.SetToken(ctx, signedToken(t, time.Now().Add(-time.Hour))))
		assert.False(t, m.LoggedIn(ctx))
	})

	t.Run("token without exp claim", func(t *testing.T) {
		m := New(storage.NewMemory())
		require.NoError(t, m.SetToken(ctx, signedToken(t, time.Time{})))
		assert.True(t, m.LoggedIn(ctx))
	})

	t.Run("malformed token", func(t *testing.T) {
		m := New(storage.NewMemory())
		require.NoError(t, m.SetToken(ctx, "not-a-jwt"))
		assert.False(t, m.LoggedIn(ctx))
	})
}

func TestGuestID_StableAcrossCalls(t *testing.T) {
	ctx := context.Background()
	m := New(storage.NewMemory())

	first := m.GuestID(ctx)
	require.NotEmpty(t, first)
	assert.Equal(t, first, m.GuestID(ctx))

	// A separate manager over the same storage sees the same id.
	kv := storage.NewMemory()
	a := New(kv)
	b := New(kv)
	assert.Equal(t, a.GuestID(ctx), b.GuestID(ctx))
}

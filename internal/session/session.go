// Package session keeps the bearer token, current user, and guest session id
// in local storage, mirroring the keys a browser client would hold.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/storage"
)

const (
	tokenKey   = "auth_token"
	userKey    = "auth_user"
	guestIDKey = "guest_session_id"
)

var timeNow = time.Now

// Manager persists session state behind the storage port. It doubles as the
// API client's TokenSource.
type Manager struct {
	kv storage.Store
}

func New(kv storage.Store) *Manager {
	return &Manager{kv: kv}
}

// Token returns the stored bearer token, or "" when the visitor is not
// logged in.
func (m *Manager) Token(ctx context.Context) string {
	data, err := m.kv.Get(ctx, tokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session: failed to read token: %v", err)
		}
		return ""
	}
	return string(data)
}

func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.kv.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// User returns the persisted user record from the last successful login.
func (m *Manager) User(ctx context.Context) (*domain.User, bool) {
	data, err := m.kv.Get(ctx, userKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session: failed to read user: %v", err)
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("session: corrupted user record: %v", err)
		return nil, false
	}
	return &user, true
}

func (m *Manager) SetUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.kv.Set(ctx, userKey, data); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// Logout erases the token and user record. The guest session id survives so a
// later guest cart lands under the same namespace.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.kv.Delete(ctx, tokenKey); err != nil {
		log.Printf("session: failed to delete token: %v", err)
	}
	if err := m.kv.Delete(ctx, userKey); err != nil {
		log.Printf("session: failed to delete user: %v", err)
	}
}

// LoggedIn reports whether a usable token is present: stored, structurally a
// JWT, and not past its expiry claim. The signature is NOT verified here; the
// backend does that on every request. This only decides whether to prompt for
// login before bothering the server.
func (m *Manager) LoggedIn(ctx context.Context) bool {
	token := m.Token(ctx)
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Printf("session: stored token is malformed: %v", err)
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return exp.After(timeNow())
}

// GuestID returns the stable identifier for this unauthenticated session,
// creating and persisting one on first use.
func (m *Manager) GuestID(ctx context.Context) string {
	data, err := m.kv.Get(ctx, guestIDKey)
	if err == nil && len(data) > 0 {
		return string(data)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("session: failed to read guest id: %v", err)
	}

	id := uuid.NewString()
	if err := m.kv.Set(ctx, guestIDKey, []byte(id)); err != nil {
		log.Printf("session: failed to persist guest id: %v", err)
	}
	return id
}

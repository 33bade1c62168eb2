// Package storage provides the local key-value persistence port used for the
// guest cart and session state, with in-memory, file, and redis backends.
package storage

import (
	"context"
	"errors"
)

// Store defines the interface for local persistence operations.
// Consumers define this interface, not any particular backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound is returned by Get when the key has never been written or has
// been deleted. Delete on a missing key is not an error.
var ErrNotFound = errors.New("key not found")

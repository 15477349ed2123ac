// Package storage provides abstractions for persistent client-side data storage.
package storage

import (
	"context"
)

// Store defines the interface for the key-value storage backing the
// cart, wishlist and address-history collections.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the service layer.
type Store interface {
	// Get retrieves the value stored under key.
	// The second return value reports whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

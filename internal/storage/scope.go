package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Kinds of scoped collections. The key for a collection is the kind
// joined with the owning identity, e.g. "cart:jane@example.com" or
// "cart:Guest", so collections never leak across accounts sharing a
// machine.
const (
	KindCart           = "cart"
	KindWishlist       = "wishlist"
	KindAddressHistory = "address_history"
)

var kinds = []string{KindCart, KindWishlist, KindAddressHistory}

// Key returns the scoped storage key for a collection kind and identity.
func Key(kind, identity string) string {
	return fmt.Sprintf("%s:%s", kind, identity)
}

// MigrateLegacy moves data stored under the pre-scoping bare keys
// ("cart", "wishlist", "address_history") to the scoped keys for the
// given identity. Scoped data already present is never overwritten;
// the legacy key is deleted either way. Safe to run on every startup,
// it is a no-op once the legacy keys are gone.
func MigrateLegacy(ctx context.Context, store Store, identity string) error {
	for _, kind := range kinds {
		legacy, ok, err := store.Get(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to read legacy key %q: %w", kind, err)
		}
		if !ok {
			continue
		}

		scoped := Key(kind, identity)
		if _, exists, err := store.Get(ctx, scoped); err != nil {
			return fmt.Errorf("failed to read scoped key %q: %w", scoped, err)
		} else if !exists {
			if err := store.Set(ctx, scoped, legacy); err != nil {
				return fmt.Errorf("failed to migrate %q to %q: %w", kind, scoped, err)
			}
			slog.Info("Migrated legacy collection", "kind", kind, "scope", identity)
		}

		if err := store.Delete(ctx, kind); err != nil {
			return fmt.Errorf("failed to delete legacy key %q: %w", kind, err)
		}
	}
	return nil
}

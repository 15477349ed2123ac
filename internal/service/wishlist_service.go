package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/europlast/storefront/internal/models"
	"github.com/europlast/storefront/internal/storage"
)

// WishlistService owns the scoped wishlist: a set of saved items keyed
// by item code.
type WishlistService struct {
	store    storage.Store
	identity string
}

// NewWishlistService creates a WishlistService for the given identity.
func NewWishlistService(store storage.Store, identity string) *WishlistService {
	return &WishlistService{store: store, identity: identity}
}

func (s *WishlistService) key() string {
	return storage.Key(storage.KindWishlist, s.identity)
}

// Entries reads the current wishlist. Missing or corrupt stored data
// reads as the empty set.
func (s *WishlistService) Entries(ctx context.Context) ([]models.WishlistEntry, error) {
	raw, ok, err := s.store.Get(ctx, s.key())
	if err != nil {
		return nil, fmt.Errorf("failed to read wishlist: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []models.WishlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("Discarding corrupt wishlist data", "key", s.key(), "error", err)
		return nil, nil
	}
	return entries, nil
}

func (s *WishlistService) write(ctx context.Context, entries []models.WishlistEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := s.store.Set(ctx, s.key(), string(raw)); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}

// Toggle adds the item when absent and removes it when present,
// returning the new membership state.
func (s *WishlistService) Toggle(ctx context.Context, item models.ItemRef) (saved bool, err error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return false, err
	}

	kept := entries[:0]
	removed := false
	for _, entry := range entries {
		if entry.ItemCode == item.ItemCode {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}

	if !removed {
		kept = append(kept, models.WishlistEntry{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Route:    item.Route,
			Image:    item.Image,
		})
	}

	if err := s.write(ctx, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Remove drops the entry for itemCode, if present.
func (s *WishlistService) Remove(ctx context.Context, itemCode string) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.ItemCode != itemCode {
			kept = append(kept, entry)
		}
	}
	return s.write(ctx, kept)
}

// Count returns the number of saved items, used for the wishlist badge.
func (s *WishlistService) Count(ctx context.Context) (int, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

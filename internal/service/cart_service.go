package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/europlast/storefront/internal/models"
	"github.com/europlast/storefront/internal/session"
	"github.com/europlast/storefront/internal/storage"
)

// CartService owns the scoped cart collection: a mapping of item code
// to quantity and price snapshot, persisted as JSON in the local store.
type CartService struct {
	store    storage.Store
	remote   RemoteCaller
	identity string
}

// NewCartService creates a CartService for the given identity. remote
// may be nil for a purely local cart (no server echo, no price refresh).
func NewCartService(store storage.Store, remote RemoteCaller, identity string) *CartService {
	return &CartService{store: store, remote: remote, identity: identity}
}

func (s *CartService) key() string {
	return storage.Key(storage.KindCart, s.identity)
}

// Lines reads the current cart. Missing or corrupt stored data reads as
// the empty cart; only storage-level failures are returned.
func (s *CartService) Lines(ctx context.Context) ([]models.CartLine, error) {
	return s.readLines(ctx, s.key())
}

func (s *CartService) readLines(ctx context.Context, key string) ([]models.CartLine, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		slog.Warn("Discarding corrupt cart data", "key", key, "error", err)
		return nil, nil
	}
	return lines, nil
}

func (s *CartService) writeLines(ctx context.Context, lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(ctx, s.key(), string(raw)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Add puts qty units of item into the cart. An existing line for the
// same item code is incremented; otherwise a new line is appended.
// Quantities below 1 are treated as 1.
//
// For signed-in users the addition is also echoed to the server cart,
// best effort: a failed echo is logged and ignored.
func (s *CartService) Add(ctx context.Context, item models.ItemRef, qty int) error {
	if qty < 1 {
		qty = 1
	}

	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range lines {
		if lines[i].ItemCode == item.ItemCode {
			lines[i].Qty += qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.CartLine{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Route:    item.Route,
			Image:    item.Image,
			Rate:     item.Rate,
			Qty:      qty,
		})
	}

	if err := s.writeLines(ctx, lines); err != nil {
		return err
	}
	slog.Info("Added to cart", "item_code", item.ItemCode, "qty", qty, "scope", s.identity)

	if s.remote != nil && s.identity != session.GuestUser {
		if _, err := s.remote.Call(ctx, methodUpdateCart, map[string]any{
			"item_code": item.ItemCode,
			"qty":       qty,
		}); err != nil {
			slog.Warn("Server cart echo failed", "item_code", item.ItemCode, "error", err)
		}
	}
	return nil
}

// SetQty adjusts the quantity of an existing line by delta, clamping
// the result to a minimum of 1. Unknown item codes are ignored.
func (s *CartService) SetQty(ctx context.Context, itemCode string, delta int) error {
	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range lines {
		if lines[i].ItemCode == itemCode {
			lines[i].Qty += delta
			if lines[i].Qty < 1 {
				lines[i].Qty = 1
			}
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return s.writeLines(ctx, lines)
}

// Remove drops the line for itemCode from the cart.
func (s *CartService) Remove(ctx context.Context, itemCode string) error {
	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ItemCode != itemCode {
			kept = append(kept, line)
		}
	}
	return s.writeLines(ctx, kept)
}

// Total returns the sum of rate times quantity across all lines.
// Formatting to two decimals is a render-time concern.
func (s *CartService) Total(ctx context.Context) (float64, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.Amount()
	}
	return total, nil
}

// Count returns the number of lines, used for the cart badge.
func (s *CartService) Count(ctx context.Context) (int, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// Clear removes the scoped cart entirely, e.g. after a placed order.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key()); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// RefreshPrices overwrites stored rates with server-authoritative
// prices. Runs only for signed-in users with a non-empty cart; price
// staleness is non-fatal, so any failure is logged and swallowed.
func (s *CartService) RefreshPrices(ctx context.Context) error {
	if s.remote == nil || s.identity == session.GuestUser {
		return nil
	}

	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	codes := make([]string, len(lines))
	for i, line := range lines {
		codes[i] = line.ItemCode
	}

	result, err := s.remote.Call(ctx, methodGetItemPrices, map[string]any{"item_codes": codes})
	if err != nil {
		slog.Warn("Price refresh failed", "error", err)
		return nil
	}

	prices := map[string]float64{}
	if err := result.Decode("prices", &prices); err != nil {
		slog.Warn("Price refresh returned unusable data", "error", err)
		return nil
	}

	changed := false
	for i := range lines {
		if rate, ok := prices[lines[i].ItemCode]; ok && rate != lines[i].Rate {
			lines[i].Rate = rate
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.writeLines(ctx, lines)
}

// MergeGuest folds the guest-scoped cart into this (signed-in) scope:
// quantities are summed for shared item codes, the rest is unioned, and
// the guest entry is deleted. A missing or empty guest cart is a no-op,
// so calling it again after a merge is safe.
func (s *CartService) MergeGuest(ctx context.Context) error {
	if s.identity == session.GuestUser {
		return nil
	}

	guestKey := storage.Key(storage.KindCart, session.GuestUser)
	guestLines, err := s.readLines(ctx, guestKey)
	if err != nil {
		return err
	}
	if len(guestLines) == 0 {
		return nil
	}

	lines, err := s.Lines(ctx)
	if err != nil {
		return err
	}

	byCode := make(map[string]int, len(lines))
	for i, line := range lines {
		byCode[line.ItemCode] = i
	}
	for _, guest := range guestLines {
		if i, ok := byCode[guest.ItemCode]; ok {
			lines[i].Qty += guest.Qty
		} else {
			lines = append(lines, guest)
		}
	}

	if err := s.writeLines(ctx, lines); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, guestKey); err != nil {
		return fmt.Errorf("failed to drop guest cart: %w", err)
	}

	slog.Info("Merged guest cart", "scope", s.identity, "guest_lines", len(guestLines))
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/europlast/storefront/internal/models"
	"github.com/europlast/storefront/internal/session"
	"github.com/europlast/storefront/internal/storage"
)

// ErrEmptyCart rejects a checkout attempt before any remote call.
var ErrEmptyCart = errors.New("cart is empty")

// addressHistoryCap bounds the autofill history to the most recent entries.
const addressHistoryCap = 5

// emailPattern is advisory only; the server validates authoritatively.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError lists the form fields that failed client-side checks.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// CheckoutForm carries the customer fields submitted with an order.
type CheckoutForm struct {
	FullName     string
	Email        string
	Phone        string
	AddressLine1 string
	City         string
	Country      string
}

// CheckoutService validates and submits orders, and keeps the local
// address history used for autofill.
type CheckoutService struct {
	store    storage.Store
	remote   RemoteCaller
	cart     *CartService
	identity string
}

// NewCheckoutService creates a CheckoutService over the given cart.
func NewCheckoutService(store storage.Store, remote RemoteCaller, cart *CartService, identity string) *CheckoutService {
	return &CheckoutService{store: store, remote: remote, cart: cart, identity: identity}
}

// Validate runs the client-side field checks. It returns a
// *ValidationError naming every failing field, or nil.
func (s *CheckoutService) Validate(form CheckoutForm) error {
	var failed []string
	if strings.TrimSpace(form.FullName) == "" {
		failed = append(failed, "full_name")
	}
	if !emailPattern.MatchString(form.Email) {
		failed = append(failed, "email")
	}
	if strings.TrimSpace(form.AddressLine1) == "" {
		failed = append(failed, "address_line1")
	}
	if strings.TrimSpace(form.City) == "" {
		failed = append(failed, "city")
	}
	if strings.TrimSpace(form.Country) == "" {
		failed = append(failed, "country")
	}

	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

// Submit places the order. An empty cart or a validation failure aborts
// before any remote call. On success the shipping address joins the
// local history, the scoped cart is cleared, and the order id is
// returned together with any non-fatal server warning. On failure the
// cart and form are left untouched so the user can retry.
func (s *CheckoutService) Submit(ctx context.Context, form CheckoutForm) (*models.OrderResult, error) {
	lines, err := s.cart.Lines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	result, err := s.remote.Call(ctx, methodPlaceOrder, map[string]any{
		"full_name":     form.FullName,
		"email":         form.Email,
		"phone":         form.Phone,
		"address_line1": form.AddressLine1,
		"city":          form.City,
		"country":       form.Country,
		"items":         lines,
	})
	if err != nil {
		return nil, err
	}

	if !result.OK() && !result.Has("sales_order") {
		msg := result.Str("error")
		if msg == "" {
			msg = result.Str("message")
		}
		if msg == "" {
			msg = "order was not accepted"
		}
		return nil, fmt.Errorf("failed to place order: %s", msg)
	}

	if err := s.pushHistory(ctx, models.AddressHistoryEntry{
		AddressLine1: form.AddressLine1,
		City:         form.City,
		Country:      form.Country,
	}); err != nil {
		slog.Warn("Failed to record address history", "error", err)
	}
	if err := s.cart.Clear(ctx); err != nil {
		slog.Warn("Failed to clear cart after order", "error", err)
	}

	order := &models.OrderResult{
		OrderID: result.Str("sales_order"),
		Warning: result.Str("warning"),
	}
	slog.Info("Order placed", "sales_order", order.OrderID, "scope", s.identity)
	return order, nil
}

// Prefill fetches profile defaults for the checkout form. Guests get an
// empty profile; the result is advisory and freely editable.
func (s *CheckoutService) Prefill(ctx context.Context) (models.Profile, error) {
	if s.identity == session.GuestUser {
		return models.Profile{}, nil
	}

	result, err := s.remote.Call(ctx, methodGetCheckoutProfile, nil)
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err := result.Into(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode checkout profile: %w", err)
	}
	return profile, nil
}

func (s *CheckoutService) historyKey() string {
	return storage.Key(storage.KindAddressHistory, s.identity)
}

// History returns the stored address history, most recent first.
func (s *CheckoutService) History(ctx context.Context) ([]models.AddressHistoryEntry, error) {
	raw, ok, err := s.store.Get(ctx, s.historyKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read address history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []models.AddressHistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("Discarding corrupt address history", "key", s.historyKey(), "error", err)
		return nil, nil
	}
	return entries, nil
}

// pushHistory prepends entry, drops any older duplicate of the same
// (address line 1, city) pair, and truncates to the history cap.
func (s *CheckoutService) pushHistory(ctx context.Context, entry models.AddressHistoryEntry) error {
	entries, err := s.History(ctx)
	if err != nil {
		return err
	}

	merged := []models.AddressHistoryEntry{entry}
	for _, existing := range entries {
		if existing.AddressLine1 == entry.AddressLine1 && existing.City == entry.City {
			continue
		}
		merged = append(merged, existing)
	}
	if len(merged) > addressHistoryCap {
		merged = merged[:addressHistoryCap]
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode address history: %w", err)
	}
	if err := s.store.Set(ctx, s.historyKey(), string(raw)); err != nil {
		return fmt.Errorf("failed to persist address history: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/europlast/storefront/internal/models"
)

// AddressService manages the server-side address book. Nothing is
// cached locally: every mutation is followed by a full re-list so the
// caller always sees authoritative state.
type AddressService struct {
	remote RemoteCaller
}

// NewAddressService creates an AddressService over the gateway.
func NewAddressService(remote RemoteCaller) *AddressService {
	return &AddressService{remote: remote}
}

// List fetches the current address book.
func (s *AddressService) List(ctx context.Context) ([]models.Address, error) {
	result, err := s.remote.Call(ctx, methodListAddresses, nil)
	if err != nil {
		return nil, err
	}

	var addresses []models.Address
	if err := result.Decode("addresses", &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

// Get fetches the record with the given server-assigned name, via a
// fresh list.
func (s *AddressService) Get(ctx context.Context, name string) (models.Address, error) {
	addresses, err := s.List(ctx)
	if err != nil {
		return models.Address{}, err
	}
	for _, addr := range addresses {
		if addr.Name == name {
			return addr, nil
		}
	}
	return models.Address{}, fmt.Errorf("address %q not found", name)
}

// Save upserts an address (a non-empty Name updates in place) and
// returns the reloaded address book.
func (s *AddressService) Save(ctx context.Context, addr models.Address) ([]models.Address, error) {
	result, err := s.remote.Call(ctx, methodSaveAddress, map[string]any{
		"name":          addr.Name,
		"address_title": addr.AddressTitle,
		"address_line1": addr.AddressLine1,
		"address_line2": addr.AddressLine2,
		"city":          addr.City,
		"country":       addr.Country,
		"phone":         addr.Phone,
	})
	if err != nil {
		return nil, err
	}
	if !result.OK() && !result.Has("name") {
		return nil, fmt.Errorf("failed to save address: %s", fallbackMessage(result.Str("message")))
	}
	return s.List(ctx)
}

// Delete removes the named address and returns the reloaded book.
func (s *AddressService) Delete(ctx context.Context, name string) ([]models.Address, error) {
	result, err := s.remote.Call(ctx, methodDeleteAddress, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, fmt.Errorf("failed to delete address: %s", fallbackMessage(result.Str("message")))
	}
	return s.List(ctx)
}

func fallbackMessage(msg string) string {
	if msg == "" {
		return "request was not accepted"
	}
	return msg
}

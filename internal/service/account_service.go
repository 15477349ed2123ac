package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/europlast/storefront/internal/models"
)

// ErrMissingFields rejects account requests with empty required fields
// before any remote call.
var ErrMissingFields = errors.New("missing required fields")

// AccountService covers the account-facing forms: contact, signup and
// the portal profile.
type AccountService struct {
	remote RemoteCaller
}

// NewAccountService creates an AccountService over the gateway.
func NewAccountService(remote RemoteCaller) *AccountService {
	return &AccountService{remote: remote}
}

// SubmitContact sends the contact form.
func (s *AccountService) SubmitContact(ctx context.Context, fullName, email, message string) error {
	if anyBlank(fullName, email, message) {
		return ErrMissingFields
	}

	result, err := s.remote.Call(ctx, methodSubmitContact, map[string]any{
		"full_name": fullName,
		"email":     email,
		"message":   message,
	})
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("failed to submit contact request: %s", fallbackMessage(result.Str("message")))
	}
	return nil
}

// Signup creates a portal account. trader requests a wholesale account,
// which the server leaves pending approval.
func (s *AccountService) Signup(ctx context.Context, fullName, email, password string, trader bool) error {
	if anyBlank(fullName, email, password) {
		return ErrMissingFields
	}

	isTrader := 0
	if trader {
		isTrader = 1
	}
	result, err := s.remote.Call(ctx, methodSignupPortalUser, map[string]any{
		"full_name": fullName,
		"email":     email,
		"password":  password,
		"is_trader": isTrader,
	})
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("failed to create account: %s", fallbackMessage(result.Str("message")))
	}
	return nil
}

// Profile fetches the signed-in user's profile.
func (s *AccountService) Profile(ctx context.Context) (models.Profile, error) {
	result, err := s.remote.Call(ctx, methodGetProfile, nil)
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err := result.Into(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile saves profile changes.
func (s *AccountService) UpdateProfile(ctx context.Context, p models.Profile) error {
	result, err := s.remote.Call(ctx, methodUpdateProfile, map[string]any{
		"full_name":     p.FullName,
		"email":         p.Email,
		"phone":         p.Phone,
		"address_line1": p.AddressLine1,
		"city":          p.City,
		"country":       p.Country,
	})
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("failed to update profile: %s", fallbackMessage(result.Str("message")))
	}
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

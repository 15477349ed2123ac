// Package session resolves the identity that scopes the local
// collections. Identity is explicit: it is decided once at startup and
// injected into the services, never looked up ambiently.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// GuestUser is the sentinel identity for unauthenticated use. Guest
// collections are merged into the real user's scope on sign-in.
const GuestUser = "Guest"

// Claims are the token fields a storefront API token may carry.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Session tracks the current identity.
type Session struct {
	user string
}

// New creates a session for the given user. An empty user means Guest.
func New(user string) *Session {
	if user == "" {
		user = GuestUser
	}
	return &Session{user: user}
}

// FromToken derives the identity from a configured API bearer token.
// The token is parsed without signature verification: the server is the
// authority on the token, the client only needs the identity inside it
// to scope local storage. Claim precedence: email, then subject, then
// user_id.
func FromToken(tokenString string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	switch {
	case claims.Email != "":
		return New(claims.Email), nil
	case claims.Subject != "":
		return New(claims.Subject), nil
	case claims.UserID != "":
		return New(claims.UserID), nil
	default:
		return nil, fmt.Errorf("token carries no identity claim")
	}
}

// User returns the current identity.
func (s *Session) User() string {
	return s.user
}

// IsGuest reports whether the session is unauthenticated.
func (s *Session) IsGuest() bool {
	return s.user == GuestUser
}

// LoginAs transitions the session to the given user and reports whether
// this was a guest-to-user transition, which is the trigger for merging
// the guest cart into the user's scope.
func (s *Session) LoginAs(user string) (fromGuest bool) {
	fromGuest = s.IsGuest() && user != GuestUser
	if user != "" {
		s.user = user
	}
	return fromGuest
}

package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestNew(t *testing.T) {
	if got := New("").User(); got != GuestUser {
		t.Errorf("empty user = %q, want Guest", got)
	}
	if New("jane@example.com").IsGuest() {
		t.Error("named user should not be guest")
	}
	if !New(GuestUser).IsGuest() {
		t.Error("Guest sentinel should be guest")
	}
}

func TestFromToken(t *testing.T) {
	tests := []struct {
		name    string
		claims  *Claims
		want    string
		wantErr bool
	}{
		{
			name:   "email claim wins",
			claims: &Claims{Email: "jane@example.com", UserID: "u-1"},
			want:   "jane@example.com",
		},
		{
			name: "subject as fallback",
			claims: &Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "jane@example.com"},
			},
			want: "jane@example.com",
		},
		{
			name:   "user_id as last resort",
			claims: &Claims{UserID: "u-1"},
			want:   "u-1",
		},
		{
			name:    "no identity claim",
			claims:  &Claims{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromToken(signedToken(t, tt.claims))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromToken failed: %v", err)
			}
			if s.User() != tt.want {
				t.Errorf("User() = %q, want %q", s.User(), tt.want)
			}
		})
	}

	t.Run("garbage token errors", func(t *testing.T) {
		if _, err := FromToken("not-a-token"); err == nil {
			t.Error("expected an error for malformed token")
		}
	})
}

func TestLoginAs(t *testing.T) {
	s := New("")
	if fromGuest := s.LoginAs("jane@example.com"); !fromGuest {
		t.Error("guest to user transition should report fromGuest")
	}
	if s.User() != "jane@example.com" {
		t.Errorf("User() = %q", s.User())
	}

	// Already signed in: no merge trigger
	if fromGuest := s.LoginAs("other@example.com"); fromGuest {
		t.Error("user to user transition should not report fromGuest")
	}
}

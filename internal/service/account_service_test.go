package service

import (
	"context"
	"errors"
	"testing"
)

func TestAccountService_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the form", func(t *testing.T) {
		remote, recorder := setupRemote(t)
		svc := NewAccountService(remote)

		if err := svc.SubmitContact(ctx, "Jane Doe", "jane@example.com", "Hello"); err != nil {
			t.Fatalf("SubmitContact failed: %v", err)
		}
		args := recorder.lastArgs(methodSubmitContact)
		if args["full_name"] != "Jane Doe" || args["message"] != "Hello" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("blank fields abort before any remote call", func(t *testing.T) {
		remote, recorder := setupRemote(t)
		svc := NewAccountService(remote)

		err := svc.SubmitContact(ctx, "Jane Doe", "", "Hello")
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
		if n := recorder.callCount(methodSubmitContact); n != 0 {
			t.Errorf("issued %d remote calls", n)
		}
	})

	t.Run("not-ok response is an error", func(t *testing.T) {
		remote, recorder := setupRemote(t)
		recorder.respond(methodSubmitContact, `{"message": {"ok": false}}`)

		if err := NewAccountService(remote).SubmitContact(ctx, "Jane", "jane@example.com", "Hi"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestAccountService_Signup(t *testing.T) {
	ctx := context.Background()
	remote, recorder := setupRemote(t)
	svc := NewAccountService(remote)

	if err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "s3cret!!", true); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	args := recorder.lastArgs(methodSignupPortalUser)
	if args["is_trader"] != 1.0 {
		t.Errorf("is_trader = %v, want 1", args["is_trader"])
	}

	if err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "s3cret!!", false); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if args := recorder.lastArgs(methodSignupPortalUser); args["is_trader"] != 0.0 {
		t.Errorf("is_trader = %v, want 0", args["is_trader"])
	}
}

func TestAccountService_Profile(t *testing.T) {
	ctx := context.Background()
	remote, recorder := setupRemote(t)
	recorder.respond(methodGetProfile,
		`{"message": {"full_name": "Jane Doe", "email": "jane@example.com", "country": "Germany"}}`)
	svc := NewAccountService(remote)

	profile, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.FullName != "Jane Doe" || profile.Country != "Germany" {
		t.Errorf("profile = %+v", profile)
	}

	t.Run("update round-trips the fields", func(t *testing.T) {
		profile.Phone = "555-0100"
		if err := svc.UpdateProfile(ctx, profile); err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}
		args := recorder.lastArgs(methodUpdateProfile)
		if args["phone"] != "555-0100" {
			t.Errorf("args = %v", args)
		}
	})
}

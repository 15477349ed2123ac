package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/europlast/storefront/internal/models"
)

func validForm() CheckoutForm {
	return CheckoutForm{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "+49 30 1234567",
		AddressLine1: "1 High Street",
		City:         "Berlin",
		Country:      "Germany",
	}
}

func setupCheckout(t *testing.T, identity string) (*CheckoutService, *CartService, *remoteRecorder) {
	t.Helper()
	store := setupStore(t)
	remote, recorder := setupRemote(t)
	cart := NewCartService(store, nil, identity)
	checkout := NewCheckoutService(store, remote, cart, identity)
	return checkout, cart, recorder
}

func TestCheckoutService_Validate(t *testing.T) {
	checkout, _, _ := setupCheckout(t, "Guest")

	tests := []struct {
		name       string
		mutate     func(*CheckoutForm)
		wantFields []string
	}{
		{"valid form passes", func(f *CheckoutForm) {}, nil},
		{"missing city flags exactly city", func(f *CheckoutForm) { f.City = "" }, []string{"city"}},
		{"whitespace name flags full_name", func(f *CheckoutForm) { f.FullName = "   " }, []string{"full_name"}},
		{"implausible email flags email", func(f *CheckoutForm) { f.Email = "jane@nodomain" }, []string{"email"}},
		{
			"multiple failures are all listed",
			func(f *CheckoutForm) { f.AddressLine1 = ""; f.Country = "" },
			[]string{"address_line1", "country"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := checkout.Validate(form)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if diff := cmp.Diff(tt.wantFields, vErr.Fields); diff != "" {
				t.Errorf("flagged fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckoutService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart never issues a remote call", func(t *testing.T) {
		checkout, _, recorder := setupCheckout(t, "Guest")

		_, err := checkout.Submit(ctx, validForm())
		if !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
		if n := recorder.callCount(methodPlaceOrder); n != 0 {
			t.Errorf("empty-cart submit issued %d remote calls", n)
		}
	})

	t.Run("validation failure never issues a remote call", func(t *testing.T) {
		checkout, cart, recorder := setupCheckout(t, "Guest")
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 100}, 2)

		form := validForm()
		form.City = ""
		_, err := checkout.Submit(ctx, form)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if n := recorder.callCount(methodPlaceOrder); n != 0 {
			t.Errorf("invalid submit issued %d remote calls", n)
		}
	})

	t.Run("successful order clears cart and records history", func(t *testing.T) {
		checkout, cart, recorder := setupCheckout(t, "Guest")
		recorder.respond(methodPlaceOrder, `{"message": {"sales_order": "SO-001"}}`)
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 100}, 2)

		order, err := checkout.Submit(ctx, validForm())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if order.OrderID != "SO-001" {
			t.Errorf("order id = %q", order.OrderID)
		}

		// Full cart contents went to the server
		args := recorder.lastArgs(methodPlaceOrder)
		items, _ := args["items"].([]any)
		if len(items) != 1 {
			t.Fatalf("submitted items = %v", args["items"])
		}
		item := items[0].(map[string]any)
		if item["item_code"] != "SKU1" || item["rate"] != 100.0 || item["qty"] != 2.0 {
			t.Errorf("submitted line = %v", item)
		}

		// Cart for the scope is now empty
		if lines, _ := cart.Lines(ctx); len(lines) != 0 {
			t.Errorf("cart not cleared: %+v", lines)
		}

		// Address history gained the shipping address
		history, _ := checkout.History(ctx)
		want := []models.AddressHistoryEntry{{AddressLine1: "1 High Street", City: "Berlin", Country: "Germany"}}
		if diff := cmp.Diff(want, history); diff != "" {
			t.Errorf("history mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("server warning rides along with success", func(t *testing.T) {
		checkout, cart, recorder := setupCheckout(t, "Guest")
		recorder.respond(methodPlaceOrder, `{"ok": true, "sales_order": "SO-002", "warning": "Item SKU1 ships late"}`)
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 10}, 1)

		order, err := checkout.Submit(ctx, validForm())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if order.Warning != "Item SKU1 ships late" {
			t.Errorf("warning = %q", order.Warning)
		}
	})

	t.Run("rejected order leaves the cart untouched", func(t *testing.T) {
		checkout, cart, recorder := setupCheckout(t, "Guest")
		recorder.respond(methodPlaceOrder, `{"message": {"ok": false, "error": "Out of stock"}}`)
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 10}, 1)

		_, err := checkout.Submit(ctx, validForm())
		if err == nil || err.Error() != "failed to place order: Out of stock" {
			t.Fatalf("err = %v", err)
		}

		if lines, _ := cart.Lines(ctx); len(lines) != 1 {
			t.Error("cart should survive a rejected order")
		}
		if history, _ := checkout.History(ctx); len(history) != 0 {
			t.Error("history should not record a failed order")
		}
	})

	t.Run("transport failure leaves the cart untouched", func(t *testing.T) {
		checkout, cart, recorder := setupCheckout(t, "Guest")
		recorder.fail(methodPlaceOrder, http.StatusServiceUnavailable)
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 10}, 1)

		if _, err := checkout.Submit(ctx, validForm()); err == nil {
			t.Fatal("expected an error")
		}
		if lines, _ := cart.Lines(ctx); len(lines) != 1 {
			t.Error("cart should survive a transport failure")
		}
	})
}

func TestCheckoutService_AddressHistory(t *testing.T) {
	ctx := context.Background()
	checkout, cart, recorder := setupCheckout(t, "Guest")
	recorder.respond(methodPlaceOrder, `{"sales_order": "SO-010"}`)

	submit := func(t *testing.T, line1, city string) {
		t.Helper()
		cart.Add(ctx, models.ItemRef{ItemCode: "SKU1", Rate: 1}, 1)
		form := validForm()
		form.AddressLine1 = line1
		form.City = city
		if _, err := checkout.Submit(ctx, form); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	t.Run("duplicates do not grow the list", func(t *testing.T) {
		submit(t, "1 High Street", "Berlin")
		submit(t, "1 High Street", "Berlin")

		history, _ := checkout.History(ctx)
		if len(history) != 1 {
			t.Errorf("history = %+v, want single entry", history)
		}
	})

	t.Run("capped to five most recent, newest first", func(t *testing.T) {
		for _, line1 := range []string{"2 Oak Ave", "3 Elm Rd", "4 Pine St", "5 Birch Way", "6 Cedar Ct"} {
			submit(t, line1, "Berlin")
		}

		history, _ := checkout.History(ctx)
		if len(history) != addressHistoryCap {
			t.Fatalf("history length = %d, want %d", len(history), addressHistoryCap)
		}
		if history[0].AddressLine1 != "6 Cedar Ct" {
			t.Errorf("newest entry = %q, want most recent first", history[0].AddressLine1)
		}
		for _, entry := range history {
			if entry.AddressLine1 == "1 High Street" {
				t.Error("oldest entry should have been truncated")
			}
		}
	})
}

func TestCheckoutService_Prefill(t *testing.T) {
	ctx := context.Background()

	t.Run("guest gets empty profile without a remote call", func(t *testing.T) {
		checkout, _, recorder := setupCheckout(t, "Guest")

		profile, err := checkout.Prefill(ctx)
		if err != nil {
			t.Fatalf("Prefill failed: %v", err)
		}
		if profile != (models.Profile{}) {
			t.Errorf("profile = %+v, want zero", profile)
		}
		if n := recorder.callCount(methodGetCheckoutProfile); n != 0 {
			t.Errorf("guest prefill issued %d remote calls", n)
		}
	})

	t.Run("signed-in prefill decodes the profile", func(t *testing.T) {
		checkout, _, recorder := setupCheckout(t, "jane@example.com")
		recorder.respond(methodGetCheckoutProfile,
			`{"message": {"full_name": "Jane Doe", "email": "jane@example.com", "phone": "123", "city": "Berlin"}}`)

		profile, err := checkout.Prefill(ctx)
		if err != nil {
			t.Fatalf("Prefill failed: %v", err)
		}
		if profile.FullName != "Jane Doe" || profile.City != "Berlin" {
			t.Errorf("profile = %+v", profile)
		}
	})
}

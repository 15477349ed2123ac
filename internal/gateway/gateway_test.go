package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, opts...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

func TestCall_SendsMethodPathAndHeaders(t *testing.T) {
	var gotPath, gotCSRF, gotRequestID, gotAuth string
	var gotArgs map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCSRF = r.Header.Get("X-Frappe-CSRF-Token")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotArgs)
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}), WithCSRFToken("tok-123"), WithBearerToken("api-key"))

	result, err := client.Call(context.Background(), "euro_website.api.update_cart", map[string]any{
		"item_code": "SKU1",
		"qty":       1,
	})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if gotPath != "/api/method/euro_website.api.update_cart" {
		t.Errorf("path = %q", gotPath)
	}
	if gotCSRF != "tok-123" {
		t.Errorf("csrf header = %q", gotCSRF)
	}
	if gotRequestID == "" {
		t.Error("expected a request id header")
	}
	if gotAuth != "Bearer api-key" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotArgs["item_code"] != "SKU1" {
		t.Errorf("args = %v", gotArgs)
	}
	if !result.OK() {
		t.Error("expected ok result")
	}
}

func TestCall_NormalizesResponseShapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
		field  string
		want   string
	}{
		{
			name:   "flat object",
			body:   `{"ok": true, "sales_order": "SO-001"}`,
			wantOK: true,
			field:  "sales_order",
			want:   "SO-001",
		},
		{
			name:   "message-wrapped object",
			body:   `{"message": {"ok": true, "sales_order": "SO-002"}}`,
			wantOK: true,
			field:  "sales_order",
			want:   "SO-002",
		},
		{
			name:   "numeric ok flag",
			body:   `{"message": {"ok": 1}}`,
			wantOK: true,
		},
		{
			name:   "missing ok flag",
			body:   `{"message": {"sales_order": "SO-003"}}`,
			wantOK: false,
			field:  "sales_order",
			want:   "SO-003",
		},
		{
			name:   "scalar message stays flat",
			body:   `{"message": "Logged In"}`,
			wantOK: false,
			field:  "message",
			want:   "Logged In",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))

			result, err := client.Call(context.Background(), "some.method", nil)
			if err != nil {
				t.Fatalf("Call failed: %v", err)
			}
			if result.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v", result.OK(), tt.wantOK)
			}
			if tt.field != "" && result.Str(tt.field) != tt.want {
				t.Errorf("Str(%q) = %q, want %q", tt.field, result.Str(tt.field), tt.want)
			}
		})
	}
}

func TestCall_ServerErrorSurfacesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "Not permitted"}`))
	}))

	_, err := client.Call(context.Background(), "euro_website.api.place_order", nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected CallError, got %T: %v", err, err)
	}
	if callErr.Status != http.StatusForbidden {
		t.Errorf("status = %d", callErr.Status)
	}
	if callErr.Message != "Not permitted" {
		t.Errorf("message = %q", callErr.Message)
	}
}

func TestLogin(t *testing.T) {
	t.Run("success retains session cookie", func(t *testing.T) {
		var cookieOnSecondCall string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/method/login":
				http.SetCookie(w, &http.Cookie{Name: "sid", Value: "session-1", Path: "/"})
				w.Write([]byte(`{"message": "Logged In", "home_page": "/portal"}`))
			default:
				if c, err := r.Cookie("sid"); err == nil {
					cookieOnSecondCall = c.Value
				}
				w.Write([]byte(`{"ok": true}`))
			}
		}))

		if err := client.Login(context.Background(), "jane@example.com", "secret"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		if _, err := client.Call(context.Background(), "euro_website.api.get_profile", nil); err != nil {
			t.Fatalf("follow-up call failed: %v", err)
		}
		if cookieOnSecondCall != "session-1" {
			t.Errorf("session cookie not carried, got %q", cookieOnSecondCall)
		}
	})

	t.Run("rejection maps to ErrLoginFailed", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Invalid login credentials"}`))
		}))

		err := client.Login(context.Background(), "jane@example.com", "wrong")
		if !errors.Is(err, ErrLoginFailed) {
			t.Errorf("expected ErrLoginFailed, got %v", err)
		}
	})
}

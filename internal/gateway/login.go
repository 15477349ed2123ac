package gateway

import (
	"context"
	"errors"
)

// ErrLoginFailed is returned when the server rejects the credentials
// without a transport error.
var ErrLoginFailed = errors.New("invalid credentials")

// Login authenticates against the framework's standard login endpoint.
// On success the session cookie lands in the client's jar and all
// subsequent calls run as the signed-in user.
//
// The login response does not follow the wrapped-object convention:
// success is a literal "Logged In" message or a home_page field.
func (c *Client) Login(ctx context.Context, usr, pwd string) error {
	result, err := c.Call(ctx, "login", map[string]any{"usr": usr, "pwd": pwd})
	if err != nil {
		var callErr *CallError
		if errors.As(err, &callErr) && callErr.Status == 401 {
			return ErrLoginFailed
		}
		return err
	}

	if result.Str("message") == "Logged In" || result.Has("home_page") {
		return nil
	}
	return ErrLoginFailed
}

package service

import (
	"context"

	"github.com/europlast/storefront/internal/gateway"
)

// Server method names. The storefront app exposes its whitelisted
// methods under one dotted namespace; login is framework-standard.
const (
	methodSubmitContact      = "euro_website.api.submit_contact"
	methodSignupPortalUser   = "euro_website.api.signup_portal_user"
	methodUpdateCart         = "euro_website.api.update_cart"
	methodPlaceOrder         = "euro_website.api.place_order"
	methodGetItemPrices      = "euro_website.api.get_item_prices"
	methodGetCheckoutProfile = "euro_website.api.get_checkout_profile"
	methodGetProfile         = "euro_website.api.get_profile"
	methodUpdateProfile      = "euro_website.api.update_profile"
	methodListAddresses      = "euro_website.api.list_addresses"
	methodSaveAddress        = "euro_website.api.save_address"
	methodDeleteAddress      = "euro_website.api.delete_address"
)

// RemoteCaller is the slice of the gateway the services depend on.
// Keeps services testable against a fake without a running server.
type RemoteCaller interface {
	Call(ctx context.Context, method string, args map[string]any) (gateway.Result, error)
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/europlast/storefront/internal/models"
	"github.com/europlast/storefront/internal/service"
)

var (
	coName    string
	coEmail   string
	coPhone   string
	coAddress string
	coCity    string
	coCountry string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: `Place an order for the current cart.

Fields left blank are prefilled from your profile when signed in, and
recent shipping addresses are shown for reference. The cart is cleared
only after the server accepts the order.`,
	RunE: runCheckout,
}

func runCheckout(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	form := service.CheckoutForm{
		FullName:     coName,
		Email:        coEmail,
		Phone:        coPhone,
		AddressLine1: coAddress,
		City:         coCity,
		Country:      coCountry,
	}

	// Advisory prefill; explicit flags always win.
	if profile, err := app.checkout.Prefill(ctx); err == nil {
		if form.FullName == "" {
			form.FullName = profile.FullName
		}
		if form.Email == "" {
			form.Email = profile.Email
		}
		if form.Phone == "" {
			form.Phone = profile.Phone
		}
		if form.AddressLine1 == "" {
			form.AddressLine1 = profile.AddressLine1
		}
		if form.City == "" {
			form.City = profile.City
		}
		if form.Country == "" {
			form.Country = profile.Country
		}
	}

	if history, err := app.checkout.History(ctx); err == nil && len(history) > 0 {
		fmt.Println(renderHistory(history))
	}

	order, err := app.checkout.Submit(ctx, form)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return errors.New("your cart is empty; add items before checking out")
	case err != nil:
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("please fix the highlighted fields: %v", vErr.Fields)
		}
		return err
	}

	msg := fmt.Sprintf("Order placed: %s", order.OrderID)
	if order.Warning != "" {
		msg += "\n" + warnStyle.Render("Note: "+order.Warning)
	}
	fmt.Println(totalStyle.Render(msg))
	return nil
}

var (
	addrTitle   string
	addrLine1   string
	addrLine2   string
	addrCity    string
	addrCountry string
	addrPhone   string
)

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Manage the server-side address book",
}

var addressesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved addresses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		addresses, err := app.addresses.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderAddresses(addresses))
		return nil
	},
}

var addressesSaveCmd = &cobra.Command{
	Use:   "save [address-id]",
	Short: "Create an address, or update one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := models.Address{
			AddressTitle: addrTitle,
			AddressLine1: addrLine1,
			AddressLine2: addrLine2,
			City:         addrCity,
			Country:      addrCountry,
			Phone:        addrPhone,
		}
		if len(args) == 1 {
			// Start from the freshly fetched record so unset flags keep
			// their server values.
			existing, err := app.addresses.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			addr.Name = existing.Name
			if addr.AddressTitle == "" {
				addr.AddressTitle = existing.AddressTitle
			}
			if addr.AddressLine1 == "" {
				addr.AddressLine1 = existing.AddressLine1
			}
			if addr.AddressLine2 == "" {
				addr.AddressLine2 = existing.AddressLine2
			}
			if addr.City == "" {
				addr.City = existing.City
			}
			if addr.Country == "" {
				addr.Country = existing.Country
			}
			if addr.Phone == "" {
				addr.Phone = existing.Phone
			}
		}

		addresses, err := app.addresses.Save(cmd.Context(), addr)
		if err != nil {
			return err
		}
		fmt.Println(renderAddresses(addresses))
		return nil
	},
}

var addressesRmCmd = &cobra.Command{
	Use:   "rm <address-id>",
	Short: "Delete an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addresses, err := app.addresses.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(renderAddresses(addresses))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&coName, "name", "", "Full name")
	checkoutCmd.Flags().StringVar(&coEmail, "email", "", "Email address")
	checkoutCmd.Flags().StringVar(&coPhone, "phone", "", "Phone number")
	checkoutCmd.Flags().StringVar(&coAddress, "address", "", "Address line 1")
	checkoutCmd.Flags().StringVar(&coCity, "city", "", "City")
	checkoutCmd.Flags().StringVar(&coCountry, "country", "", "Country")

	addressesSaveCmd.Flags().StringVar(&addrTitle, "title", "", "Address title")
	addressesSaveCmd.Flags().StringVar(&addrLine1, "address", "", "Address line 1")
	addressesSaveCmd.Flags().StringVar(&addrLine2, "address2", "", "Address line 2")
	addressesSaveCmd.Flags().StringVar(&addrCity, "city", "", "City")
	addressesSaveCmd.Flags().StringVar(&addrCountry, "country", "", "Country")
	addressesSaveCmd.Flags().StringVar(&addrPhone, "phone", "", "Phone number")

	addressesCmd.AddCommand(addressesListCmd)
	addressesCmd.AddCommand(addressesSaveCmd)
	addressesCmd.AddCommand(addressesRmCmd)
}

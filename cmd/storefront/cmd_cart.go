package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/europlast/storefront/internal/models"
)

var (
	cartItemName  string
	cartItemRoute string
	cartItemImage string
	cartItemRate  float64
	cartQty       int
)

// cartCmd groups the local cart operations
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	Long: `Manage the shopping cart.

The cart lives locally, scoped to the signed-in user (or Guest until
you log in, after which the guest cart is merged into your own).`,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <item-code>",
	Short: "Add an item to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := models.ItemRef{
			ItemCode: args[0],
			ItemName: cartItemName,
			Route:    cartItemRoute,
			Image:    cartItemImage,
			Rate:     cartItemRate,
		}
		if item.ItemName == "" {
			item.ItemName = item.ItemCode
		}
		if err := app.cart.Add(cmd.Context(), item, cartQty); err != nil {
			return err
		}

		count, err := app.cart.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Added to cart. %d item(s) in cart.\n", count)
		return nil
	},
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Signed-in carts pick up current prices first; staleness is
		// non-fatal so this never blocks the listing.
		if err := app.cart.RefreshPrices(cmd.Context()); err != nil {
			return err
		}

		lines, err := app.cart.Lines(cmd.Context())
		if err != nil {
			return err
		}
		total, err := app.cart.Total(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderCart(lines, total))
		return nil
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty <item-code> <delta>",
	Short: "Adjust a line's quantity (never below 1)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var delta int
		if _, err := fmt.Sscanf(args[1], "%d", &delta); err != nil {
			return fmt.Errorf("delta must be an integer, got %q", args[1])
		}
		return app.cart.SetQty(cmd.Context(), args[0], delta)
	},
}

var cartRmCmd = &cobra.Command{
	Use:   "rm <item-code>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.cart.Remove(cmd.Context(), args[0])
	},
}

var cartRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh cart prices from the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if app.sess.IsGuest() {
			fmt.Println(mutedStyle.Render("Guests keep the prices they saw; log in to refresh."))
			return nil
		}
		return app.cart.RefreshPrices(cmd.Context())
	},
}

func init() {
	cartAddCmd.Flags().StringVar(&cartItemName, "name", "", "Item display name")
	cartAddCmd.Flags().StringVar(&cartItemRoute, "route", "", "Item page route")
	cartAddCmd.Flags().StringVar(&cartItemImage, "image", "", "Item image URL")
	cartAddCmd.Flags().Float64Var(&cartItemRate, "rate", 0, "Unit price")
	cartAddCmd.Flags().IntVar(&cartQty, "qty", 1, "Quantity to add")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartQtyCmd)
	cartCmd.AddCommand(cartRmCmd)
	cartCmd.AddCommand(cartRefreshCmd)
}

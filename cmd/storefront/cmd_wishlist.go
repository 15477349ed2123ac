package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/europlast/storefront/internal/models"
)

var (
	wishItemName  string
	wishItemRoute string
	wishItemImage string
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage saved items",
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle <item-code>",
	Short: "Save an item, or un-save it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := models.ItemRef{
			ItemCode: args[0],
			ItemName: wishItemName,
			Route:    wishItemRoute,
			Image:    wishItemImage,
		}
		if item.ItemName == "" {
			item.ItemName = item.ItemCode
		}

		saved, err := app.wishlist.Toggle(cmd.Context(), item)
		if err != nil {
			return err
		}
		if saved {
			fmt.Printf("Saved %s.\n", item.ItemCode)
		} else {
			fmt.Printf("Removed %s.\n", item.ItemCode)
		}
		return nil
	},
}

var wishlistRmCmd = &cobra.Command{
	Use:   "rm <item-code>",
	Short: "Remove a saved item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.wishlist.Remove(cmd.Context(), args[0])
	},
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show saved items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries, err := app.wishlist.Entries(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderWishlist(entries))
		return nil
	},
}

func init() {
	wishlistToggleCmd.Flags().StringVar(&wishItemName, "name", "", "Item display name")
	wishlistToggleCmd.Flags().StringVar(&wishItemRoute, "route", "", "Item page route")
	wishlistToggleCmd.Flags().StringVar(&wishItemImage, "image", "", "Item image URL")

	wishlistCmd.AddCommand(wishlistToggleCmd)
	wishlistCmd.AddCommand(wishlistRmCmd)
	wishlistCmd.AddCommand(wishlistListCmd)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginPassword string

	signupName     string
	signupPassword string
	signupTrader   bool

	contactName  string
	contactEmail string

	profileName    string
	profileEmail   string
	profilePhone   string
	profileAddress string
	profileCity    string
	profileCountry string
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to the storefront",
	Long: `Sign in to the storefront.

On first sign-in from this machine the guest cart is merged into your
own: quantities add up for items in both carts. The identity is written
back to the config file so later commands use your scope.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		password := loginPassword
		if password == "" {
			password = os.Getenv("STOREFRONT_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("provide a password via --password or STOREFRONT_PASSWORD")
		}

		if err := app.gw.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		fromGuest := app.sess.LoginAs(email)
		app.rebind()
		if fromGuest {
			if err := mergeAfterLogin(cmd.Context()); err != nil {
				return err
			}
		}

		if err := saveUser(cfgPath, email); err != nil {
			slog.Warn("Signed in but could not persist identity", "error", err)
		}
		fmt.Printf("Signed in as %s.\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in identity",
	Long: `Forget the signed-in identity.

Later commands run as Guest. Local data stored under your own scope is
kept and picked up again on the next login. The server session, if any,
expires on its own.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if app.sess.IsGuest() {
			fmt.Println("Not signed in.")
			return nil
		}
		if err := saveUser(cfgPath, ""); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create a portal account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.account.Signup(cmd.Context(), signupName, args[0], signupPassword, signupTrader); err != nil {
			return err
		}
		if signupTrader {
			fmt.Println("Account created. Wholesale access is pending approval; log in to continue.")
		} else {
			fmt.Println("Account created. Log in to continue.")
		}
		return nil
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact <message>",
	Short: "Send a contact request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.account.SubmitContact(cmd.Context(), contactName, contactEmail, args[0]); err != nil {
			return err
		}
		fmt.Println("Thanks. We'll reach out shortly.")
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the portal profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := app.account.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderProfile(profile))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Start from the current record so unset flags keep their values.
		profile, err := app.account.Profile(cmd.Context())
		if err != nil {
			return err
		}
		if profileName != "" {
			profile.FullName = profileName
		}
		if profileEmail != "" {
			profile.Email = profileEmail
		}
		if profilePhone != "" {
			profile.Phone = profilePhone
		}
		if profileAddress != "" {
			profile.AddressLine1 = profileAddress
		}
		if profileCity != "" {
			profile.City = profileCity
		}
		if profileCountry != "" {
			profile.Country = profileCountry
		}

		if err := app.account.UpdateProfile(cmd.Context(), profile); err != nil {
			return err
		}
		fmt.Println("Profile updated.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (or set STOREFRONT_PASSWORD)")

	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password")
	signupCmd.Flags().BoolVar(&signupTrader, "trader", false, "Request a wholesale (trader) account")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("password")

	contactCmd.Flags().StringVar(&contactName, "name", "", "Full name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "Email address")
	contactCmd.MarkFlagRequired("name")
	contactCmd.MarkFlagRequired("email")

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "Email address")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")
	profileUpdateCmd.Flags().StringVar(&profileAddress, "address", "", "Address line 1")
	profileUpdateCmd.Flags().StringVar(&profileCity, "city", "", "City")
	profileUpdateCmd.Flags().StringVar(&profileCountry, "country", "", "Country")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}

// Command storefront is a terminal client for the Euro Plast web store.
// It keeps the cart, wishlist and address history in a local database
// scoped per signed-in user, and talks to the storefront server over
// its remote method API for everything else.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/europlast/storefront/internal/gateway"
	"github.com/europlast/storefront/internal/service"
	"github.com/europlast/storefront/internal/session"
	"github.com/europlast/storefront/internal/storage"
	"github.com/europlast/storefront/internal/storage/sqlite"
	"github.com/europlast/storefront/pkg/logging"
)

var (
	cfgPath     string
	serverFlag  string
	userFlag    string
	metricsAddr string

	cfg config
	app *appContext
)

// appContext bundles the wired services for the running command.
type appContext struct {
	store     storage.Store
	gw        *gateway.Client
	sess      *session.Session
	cart      *service.CartService
	wishlist  *service.WishlistService
	checkout  *service.CheckoutService
	addresses *service.AddressService
	account   *service.AccountService
}

// rebind rebuilds the identity-scoped services, used after a login
// transitions the session from Guest to a real user.
func (a *appContext) rebind() {
	identity := a.sess.User()
	a.cart = service.NewCartService(a.store, a.gw, identity)
	a.wishlist = service.NewWishlistService(a.store, identity)
	a.checkout = service.NewCheckoutService(a.store, a.gw, a.cart, identity)
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal client for the Euro Plast storefront",
	Long: `Terminal client for the Euro Plast storefront.

Cart, wishlist and address history live in a local database, scoped to
the signed-in user (or Guest). Orders, addresses and account actions go
to the storefront server.

Getting started:
  storefront cart add SKU-123 --name "Storage Box" --rate 4.90
  storefront cart list
  storefront login jane@example.com
  storefront checkout --name "Jane Doe" --email jane@example.com \
      --address "1 High Street" --city Berlin --country Germany`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func setup(cmd *cobra.Command, _ []string) error {
	logging.Setup()

	var err error
	cfg, err = loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	// Identity: explicit flag, then config, then token claims, then Guest.
	user := cfg.User
	if userFlag != "" {
		user = userFlag
	}
	if user == "" && cfg.APIToken != "" {
		if s, err := session.FromToken(cfg.APIToken); err == nil {
			user = s.User()
		} else {
			slog.Warn("Ignoring API token for identity", "error", err)
		}
	}
	sess := session.New(user)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := storage.MigrateLegacy(cmd.Context(), store, sess.User()); err != nil {
		store.Close()
		return err
	}

	gw, err := gateway.New(cfg.ServerURL,
		gateway.WithCSRFToken(cfg.CSRFToken),
		gateway.WithBearerToken(cfg.APIToken),
	)
	if err != nil {
		store.Close()
		return err
	}

	app = &appContext{
		store:     store,
		gw:        gw,
		sess:      sess,
		addresses: service.NewAddressService(gw),
		account:   service.NewAccountService(gw),
	}
	app.rebind()

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", gw.MetricsHandler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				slog.Error("Metrics listener failed", "error", err)
			}
		}()
		slog.Info("Serving metrics", "address", metricsAddr)
	}
	return nil
}

func teardown(*cobra.Command, []string) {
	if app != nil && app.store != nil {
		app.store.Close()
	}
}

// mergeAfterLogin folds the guest collections into the signed-in scope.
// Called exactly on the guest-to-user transition.
func mergeAfterLogin(ctx context.Context) error {
	if err := app.cart.MergeGuest(ctx); err != nil {
		return fmt.Errorf("failed to merge guest cart: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Storefront server URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Identity scoping local data (overrides config)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve remote-call metrics on this address")

	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(wishlistCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

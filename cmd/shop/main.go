// Command shop is the storefront command-line client. It browses the
// catalog, keeps a cart that survives restarts, and syncs it with the
// server once the shopper logs in.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	apiURL      string
	storeDriver string
	storePath   string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     *app
	)

	root := &cobra.Command{
		Use:   "shop",
		Short: "shop - storefront client",
		Long: `shop talks to the storefront API.

Browse items by category and price, keep a cart locally while anonymous,
and log in to have the server keep it for you.

Configuration comes from STOREFRONT_API_URL, STORE_DRIVER, STORE_PATH,
MAX_PRICE_CEILING, HTTP_TIMEOUT_SECONDS, LOG_LEVEL and LOG_FORMAT.
Flags override the environment.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			a, err = newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api-url", "", "storefront API base URL")
	pf.StringVar(&flags.storeDriver, "store-driver", "", "local store driver (file, sqlite, memory)")
	pf.StringVar(&flags.storePath, "store-path", "", "local store path")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	current := func() *app { return a }
	root.AddCommand(
		newItemsCmd(current),
		newCategoriesCmd(current),
		newCartCmd(current),
		newAddCmd(current),
		newRemoveCmd(current),
		newLoginCmd(current),
		newSignupCmd(current),
		newLogoutCmd(current),
		newWhoamiCmd(current),
	)

	return root
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.ClientConfig, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("api-url") {
		cfg.APIURL = flags.apiURL
	}
	if changed("store-driver") {
		cfg.StoreDriver = flags.storeDriver
	}
	if changed("store-path") {
		cfg.StorePath = flags.storePath
	}
	if changed("log-level") {
		cfg.Logger.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

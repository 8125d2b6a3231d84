// Package cli implements the fleetshare command-line interface. Apart from
// `serve`, every command is a thin HTTP client against a running daemon.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagAdminKey string
	flagCurrency string
)

var rootCmd = &cobra.Command{
	Use:   "fleetshare",
	Short: "Fractional ownership ledger for revenue-generating vehicles",
	Long: `Fleetshare keeps the ownership ledger for fleets of revenue-generating
vehicles: assets are split into tradable unit shares, revenue deposits are
distributed to holders in proportion to their holdings, and holders pull
their earnings via claims.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://127.0.0.1:7345", "Base URL of the fleetshare daemon")
	rootCmd.PersistentFlags().StringVar(&flagAdminKey, "admin-key", os.Getenv("FLEETSHARE_ADMIN_KEY"), "Administrator key for admin commands")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "USD", "Currency code used when rendering amounts")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func client() *Client {
	return NewClient(flagServer, flagAdminKey)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/fleetshare-network/fleetshare/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to config file (default ~/.fleetshare/config.toml)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fleetshare daemon",
	Long:  `Start the ledger daemon and serve the HTTP API until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	return daemon.Run(cfg)
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetshare-network/fleetshare/internal/ledger"
)

func init() {
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(claimCmd)
	claimCmd.Flags().Bool("all", false, "Claim across every asset")
	claimCmd.Flags().String("holder", "", "Holder id")
}

// ─── portfolio ──────────────────────────────────────────────────────────────

var portfolioCmd = &cobra.Command{
	Use:   "portfolio HOLDER",
	Short: "Show a holder's positions and pending earnings",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolio,
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	var p ledger.Portfolio
	if err := client().Get(fmt.Sprintf("/v1/holders/%s/portfolio", args[0]), &p); err != nil {
		return err
	}
	if len(p.Positions) == 0 {
		fmt.Printf("%s holds no shares\n", args[0])
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tNAME\tUNITS\tVALUE\tPENDING")
	for _, pos := range p.Positions {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			pos.AssetID, pos.Name, pos.Units, formatAmount(pos.Value), formatAmount(pos.Pending))
	}
	w.Flush()
	fmt.Printf("\nTotal value: %s\nTotal pending: %s\n",
		formatAmount(p.TotalValue), formatAmount(p.TotalPending))
	return nil
}

// ─── claim ──────────────────────────────────────────────────────────────────

var claimCmd = &cobra.Command{
	Use:   "claim [ASSET_ID]",
	Short: "Claim pending earnings for one asset, or --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	holder, _ := cmd.Flags().GetString("holder")
	all, _ := cmd.Flags().GetBool("all")

	var out struct {
		Claimed decimal.Decimal `json:"claimed"`
	}
	switch {
	case all:
		if err := client().Post("/v1/claims", map[string]string{"holder": holder}, &out); err != nil {
			return err
		}
	case len(args) == 1:
		id, err := parseAssetID(args[0])
		if err != nil {
			return err
		}
		if err := client().Post(fmt.Sprintf("/v1/assets/%d/claim", id), map[string]string{"holder": holder}, &out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("pass an asset id or --all")
	}
	fmt.Printf("Claimed %s\n", formatAmount(out.Claimed))
	return nil
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

func init() {
	rootCmd.AddCommand(treasuryCmd)
	treasuryCmd.AddCommand(treasuryBalanceCmd)
	treasuryCmd.AddCommand(treasuryWithdrawCmd)
	treasuryCmd.AddCommand(treasuryReceiveCmd)
	rootCmd.AddCommand(eventsCmd)

	treasuryReceiveCmd.Flags().String("from", "", "Source reference for the received funds")
	eventsCmd.Flags().Int("limit", 25, "Maximum number of events to show")
}

var treasuryCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Inspect and move treasury funds",
}

var treasuryBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the contract account balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Balance decimal.Decimal `json:"balance"`
		}
		if err := client().Get("/v1/treasury/balance", &out); err != nil {
			return err
		}
		fmt.Printf("Contract balance: %s\n", formatAmount(out.Balance))
		return nil
	},
}

var treasuryWithdrawCmd = &cobra.Command{
	Use:   "withdraw AMOUNT",
	Short: "Withdraw funds to the operator account (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}
		if err := client().Post("/v1/treasury/withdraw", map[string]interface{}{"amount": amount}, nil); err != nil {
			return err
		}
		fmt.Printf("Withdrew %s to the operator account\n", formatAmount(amount))
		return nil
	},
}

var treasuryReceiveCmd = &cobra.Command{
	Use:   "receive AMOUNT",
	Short: "Record incidental incoming funds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}
		if err := client().Post("/v1/treasury/receive", map[string]interface{}{"from": from, "amount": amount}, nil); err != nil {
			return err
		}
		fmt.Printf("Received %s\n", formatAmount(amount))
		return nil
	},
}

// ─── events ─────────────────────────────────────────────────────────────────

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the audit trail, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		var events []domain.Event
		if err := client().Get(fmt.Sprintf("/v1/events?limit=%d", limit), &events); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tKIND\tASSET\tHOLDER\tUNITS\tAMOUNT")
		for _, e := range events {
			asset := ""
			if e.AssetID != 0 {
				asset = fmt.Sprintf("%d", e.AssetID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				e.Time.Format("2006-01-02 15:04:05"), e.Kind, asset, e.Holder, e.Units, e.Amount)
		}
		return w.Flush()
	},
}

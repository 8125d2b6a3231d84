package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetshare-network/fleetshare/internal/ledger"
)

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(revenueCmd)
	rootCmd.AddCommand(expenseCmd)

	buyCmd.Flags().String("holder", "", "Holder id")
	buyCmd.Flags().String("payment", "", "Payment attached to the purchase")
	sellCmd.Flags().String("holder", "", "Holder id")
}

// ─── buy ────────────────────────────────────────────────────────────────────

var buyCmd = &cobra.Command{
	Use:   "buy ASSET_ID UNITS",
	Short: "Buy unit shares of an asset",
	Args:  cobra.ExactArgs(2),
	RunE:  runBuy,
}

func runBuy(cmd *cobra.Command, args []string) error {
	id, units, err := parseTradeArgs(args)
	if err != nil {
		return err
	}
	holder, _ := cmd.Flags().GetString("holder")
	paymentRaw, _ := cmd.Flags().GetString("payment")
	payment, err := decimal.NewFromString(paymentRaw)
	if err != nil {
		return fmt.Errorf("invalid payment %q: %w", paymentRaw, err)
	}

	var res ledger.TradeResult
	err = client().Post(fmt.Sprintf("/v1/assets/%d/buy", id), map[string]interface{}{
		"holder":  holder,
		"units":   units,
		"payment": payment,
	}, &res)
	if err != nil {
		return err
	}
	fmt.Printf("Bought %d units of asset %d for %s (now holding %d units)\n",
		units, id, formatAmount(res.Cost), res.Holding.Units)
	if res.Settled.IsPositive() {
		fmt.Printf("Settled pending earnings: %s\n", formatAmount(res.Settled))
	}
	if res.Refund.IsPositive() {
		fmt.Printf("Refunded excess payment: %s\n", formatAmount(res.Refund))
	}
	return nil
}

// ─── sell ───────────────────────────────────────────────────────────────────

var sellCmd = &cobra.Command{
	Use:   "sell ASSET_ID UNITS",
	Short: "Sell unit shares back to the pool",
	Args:  cobra.ExactArgs(2),
	RunE:  runSell,
}

func runSell(cmd *cobra.Command, args []string) error {
	id, units, err := parseTradeArgs(args)
	if err != nil {
		return err
	}
	holder, _ := cmd.Flags().GetString("holder")

	var res ledger.TradeResult
	err = client().Post(fmt.Sprintf("/v1/assets/%d/sell", id), map[string]interface{}{
		"holder": holder,
		"units":  units,
	}, &res)
	if err != nil {
		return err
	}
	fmt.Printf("Sold %d units of asset %d for %s (now holding %d units)\n",
		units, id, formatAmount(res.Cost), res.Holding.Units)
	if res.Settled.IsPositive() {
		fmt.Printf("Settled pending earnings: %s\n", formatAmount(res.Settled))
	}
	return nil
}

// ─── revenue / expense (admin) ──────────────────────────────────────────────

var revenueCmd = &cobra.Command{
	Use:   "revenue ASSET_ID AMOUNT",
	Short: "Deposit revenue for an asset (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAmountOp(args, "revenue", "Deposited %s revenue for asset %d\n")
	},
}

var expenseCmd = &cobra.Command{
	Use:   "expense ASSET_ID AMOUNT",
	Short: "Record an expense for an asset (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAmountOp(args, "expense", "Recorded %s expense for asset %d\n")
	},
}

func runAmountOp(args []string, op, doneFmt string) error {
	id, err := parseAssetID(args[0])
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	err = client().Post(fmt.Sprintf("/v1/assets/%d/%s", id, op),
		map[string]interface{}{"amount": amount}, nil)
	if err != nil {
		return err
	}
	fmt.Printf(doneFmt, formatAmount(amount), id)
	return nil
}

func parseTradeArgs(args []string) (uint64, uint64, error) {
	id, err := parseAssetID(args[0])
	if err != nil {
		return 0, 0, err
	}
	units, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || units == 0 {
		return 0, 0, fmt.Errorf("invalid unit count %q", args[1])
	}
	return id, units, nil
}

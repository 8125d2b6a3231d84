package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

func init() {
	rootCmd.AddCommand(assetCmd)
	assetCmd.AddCommand(assetCreateCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetShowCmd)
	assetCmd.AddCommand(assetStatusCmd)

	assetCreateCmd.Flags().String("name", "", "Display name of the asset")
	assetCreateCmd.Flags().String("image", "", "Image reference for the asset")
	assetCreateCmd.Flags().Uint64("shares", 0, "Total unit shares")
	assetCreateCmd.Flags().String("price", "", "Price per unit share")
}

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage registered assets",
}

// ─── asset create ───────────────────────────────────────────────────────────

var assetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new asset (admin)",
	RunE:  runAssetCreate,
}

func runAssetCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	image, _ := cmd.Flags().GetString("image")
	shares, _ := cmd.Flags().GetUint64("shares")
	priceRaw, _ := cmd.Flags().GetString("price")

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", priceRaw, err)
	}

	var a domain.Asset
	err = client().Post("/v1/assets", map[string]interface{}{
		"name":           name,
		"image_ref":      image,
		"total_shares":   shares,
		"price_per_unit": price,
	}, &a)
	if err != nil {
		return err
	}
	fmt.Printf("Created asset %d: %s (%d shares at %s each)\n",
		a.ID, a.Name, a.TotalShares, formatAmount(a.PricePerUnit))
	return nil
}

// ─── asset list ─────────────────────────────────────────────────────────────

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all assets",
	RunE:  runAssetList,
}

func runAssetList(cmd *cobra.Command, args []string) error {
	var assets []domain.Asset
	if err := client().Get("/v1/assets", &assets); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSHARES\tAVAILABLE\tPRICE\tSTATUS")
	for _, a := range assets {
		status := "active"
		if !a.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			a.ID, a.Name, a.TotalShares, a.AvailableShares, formatAmount(a.PricePerUnit), status)
	}
	return w.Flush()
}

// ─── asset show ─────────────────────────────────────────────────────────────

var assetShowCmd = &cobra.Command{
	Use:   "show ASSET_ID",
	Short: "Show one asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetShow,
}

func runAssetShow(cmd *cobra.Command, args []string) error {
	id, err := parseAssetID(args[0])
	if err != nil {
		return err
	}
	var a domain.Asset
	if err := client().Get(fmt.Sprintf("/v1/assets/%d", id), &a); err != nil {
		return err
	}
	fmt.Printf("Asset %d: %s\n", a.ID, a.Name)
	if a.ImageRef != "" {
		fmt.Printf("  Image:      %s\n", a.ImageRef)
	}
	fmt.Printf("  Shares:     %d total, %d available, %d sold\n", a.TotalShares, a.AvailableShares, a.SoldShares())
	fmt.Printf("  Unit price: %s\n", formatAmount(a.PricePerUnit))
	fmt.Printf("  Revenue:    %s cumulative\n", formatAmount(a.CumulativeRevenue))
	fmt.Printf("  Expenses:   %s cumulative\n", formatAmount(a.CumulativeExpense))
	fmt.Printf("  Active:     %v\n", a.Active)
	fmt.Printf("  Created:    %s\n", a.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// ─── asset status ───────────────────────────────────────────────────────────

var assetStatusCmd = &cobra.Command{
	Use:   "status ASSET_ID active|inactive",
	Short: "Open or close an asset for trading (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssetStatus,
}

func runAssetStatus(cmd *cobra.Command, args []string) error {
	id, err := parseAssetID(args[0])
	if err != nil {
		return err
	}
	var active bool
	switch args[1] {
	case "active":
		active = true
	case "inactive":
		active = false
	default:
		return fmt.Errorf("status must be active or inactive, got %q", args[1])
	}
	var a domain.Asset
	if err := client().Patch(fmt.Sprintf("/v1/assets/%d/status", id), map[string]bool{"active": active}, &a); err != nil {
		return err
	}
	fmt.Printf("Asset %d is now %s\n", a.ID, args[1])
	return nil
}

func parseAssetID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid asset id %q", raw)
	}
	return id, nil
}

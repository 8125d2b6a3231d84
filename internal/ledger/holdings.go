package ledger

import (
	"fmt"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Holdings Book ──────────────────────────────────────────────────────────

// Book owns per-(asset, holder) share balances and debt snapshots.
type Book struct {
	holdings domain.HoldingStore
}

// NewBook creates a holdings book over the given store.
func NewBook(holdings domain.HoldingStore) *Book {
	return &Book{holdings: holdings}
}

// HoldingOf returns the holder's position in the asset. A holder with no
// recorded position gets a zero-unit holding — absence is not an error.
func (b *Book) HoldingOf(assetID domain.AssetID, holder string) (domain.Holding, error) {
	h, found, err := b.holdings.GetHolding(assetID, holder)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("load holding (%d, %s): %w", assetID, holder, err)
	}
	if !found {
		return domain.Holding{AssetID: assetID, Holder: holder}, nil
	}
	return h, nil
}

// put writes a holding back to the store.
func (b *Book) put(h domain.Holding) error {
	if err := b.holdings.PutHolding(h); err != nil {
		return fmt.Errorf("store holding (%d, %s): %w", h.AssetID, h.Holder, err)
	}
	return nil
}

// HoldingsOf returns every recorded holding of one holder in asset-id order.
// Zero-unit holdings are included; callers filter as needed.
func (b *Book) HoldingsOf(holder string) ([]domain.Holding, error) {
	return b.holdings.HoldingsByHolder(holder)
}

// UnitsOutstanding sums the units held across all holders of the asset.
func (b *Book) UnitsOutstanding(assetID domain.AssetID) (uint64, error) {
	all, err := b.holdings.HoldingsByAsset(assetID)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, h := range all {
		total += h.Units
	}
	return total, nil
}

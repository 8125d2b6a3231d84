// Package ledger implements the fractional-ownership core: the asset
// registry, the per-holder holdings book, the accumulator-based distribution
// engine, the trade gateway and the portfolio view. All state is reached
// through the domain store interfaces; the package holds none of its own.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Asset Registry ─────────────────────────────────────────────────────────

// Registry owns the catalog of assets: creation, activation state and
// enumeration.
type Registry struct {
	assets domain.AssetStore
}

// NewRegistry creates a registry over the given asset store.
func NewRegistry(assets domain.AssetStore) *Registry {
	return &Registry{assets: assets}
}

// Create registers a new asset and returns it. The new asset starts fully
// available, with a zero accumulator, open for trading.
func (r *Registry) Create(name, imageRef string, totalShares uint64, pricePerUnit decimal.Decimal) (domain.Asset, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Asset{}, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidArgument)
	}
	if totalShares == 0 {
		return domain.Asset{}, fmt.Errorf("%w: total shares must be positive", domain.ErrInvalidArgument)
	}
	if !pricePerUnit.IsPositive() {
		return domain.Asset{}, fmt.Errorf("%w: price per unit must be positive", domain.ErrInvalidArgument)
	}

	id, err := r.assets.NextAssetID()
	if err != nil {
		return domain.Asset{}, fmt.Errorf("assign asset id: %w", err)
	}
	a := domain.Asset{
		ID:              id,
		Name:            name,
		ImageRef:        imageRef,
		TotalShares:     totalShares,
		AvailableShares: totalShares,
		PricePerUnit:    pricePerUnit,
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.assets.PutAsset(a); err != nil {
		return domain.Asset{}, fmt.Errorf("store asset %d: %w", id, err)
	}
	return a, nil
}

// SetActive flips the trading gate. It does not touch balances.
func (r *Registry) SetActive(id domain.AssetID, active bool) (domain.Asset, error) {
	a, err := r.Get(id)
	if err != nil {
		return domain.Asset{}, err
	}
	a.Active = active
	if err := r.assets.PutAsset(a); err != nil {
		return domain.Asset{}, fmt.Errorf("store asset %d: %w", id, err)
	}
	return a, nil
}

// Get returns the asset with the given id.
func (r *Registry) Get(id domain.AssetID) (domain.Asset, error) {
	a, found, err := r.assets.GetAsset(id)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("load asset %d: %w", id, err)
	}
	if !found {
		return domain.Asset{}, fmt.Errorf("%w: id %d", domain.ErrAssetNotFound, id)
	}
	return a, nil
}

// List returns all assets in creation order.
func (r *Registry) List() ([]domain.Asset, error) {
	return r.assets.ListAssets()
}

// Count returns the number of registered assets.
func (r *Registry) Count() (int, error) {
	all, err := r.assets.ListAssets()
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

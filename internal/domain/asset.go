// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Asset Types ────────────────────────────────────────────────────────────

// AssetID identifies a registered asset. IDs are assigned sequentially
// starting at 1; 0 is never issued.
type AssetID = uint64

// Asset is one revenue-generating vehicle split into tradable unit shares.
type Asset struct {
	ID                AssetID         `json:"id"`
	Name              string          `json:"name"`
	ImageRef          string          `json:"image_ref,omitempty"`
	TotalShares       uint64          `json:"total_shares"`
	AvailableShares   uint64          `json:"available_shares"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	CumulativeRevenue decimal.Decimal `json:"cumulative_revenue"`
	CumulativeExpense decimal.Decimal `json:"cumulative_expense"`
	// Accumulator is the scaled cumulative revenue-per-share value.
	// It never decreases for the lifetime of the asset.
	Accumulator decimal.Decimal `json:"accumulator"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SoldShares returns the number of shares currently held by holders.
func (a Asset) SoldShares() uint64 {
	return a.TotalShares - a.AvailableShares
}

// ─── Holding Types ──────────────────────────────────────────────────────────

// Holding is the position of one holder in one asset. Holdings are created
// lazily on first purchase and never deleted; a zero-unit holding is inert.
type Holding struct {
	AssetID AssetID `json:"asset_id"`
	Holder  string  `json:"holder"`
	Units   uint64  `json:"units"`
	// Debt is the accumulator snapshot recorded at the last settlement.
	// The gap between the asset's accumulator and Debt is the holder's
	// unclaimed entitlement. Meaningless while Units == 0.
	Debt decimal.Decimal `json:"debt"`
}

// ─── Treasury Accounts ──────────────────────────────────────────────────────

// Reserved treasury account names. The "@" prefix keeps them out of the
// holder-id namespace.
const (
	AccountContract = "@contract"
	AccountOperator = "@operator"
)

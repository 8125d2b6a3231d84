package domain

import "github.com/shopspring/decimal"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the ledger core depends on them.
// All ledger state lives behind these two stores plus the id counter —
// there is no ambient global state.

// AssetStore abstracts the Map<AssetID, Asset> record store.
type AssetStore interface {
	PutAsset(a Asset) error
	// GetAsset reports found=false for an unknown id instead of relying on
	// a reserved sentinel value.
	GetAsset(id AssetID) (a Asset, found bool, err error)
	// ListAssets returns all assets in creation (enumeration) order.
	ListAssets() ([]Asset, error)
	// NextAssetID returns the next sequential id, starting at 1, and
	// advances the counter.
	NextAssetID() (AssetID, error)
}

// HoldingStore abstracts the Map<(AssetID, Holder), Holding> record store.
type HoldingStore interface {
	PutHolding(h Holding) error
	GetHolding(assetID AssetID, holder string) (h Holding, found bool, err error)
	// HoldingsByHolder returns the holder's holdings in asset-id order.
	HoldingsByHolder(holder string) ([]Holding, error)
	// HoldingsByAsset returns all holdings for one asset.
	HoldingsByAsset(assetID AssetID) ([]Holding, error)
}

// Journal is the append-only audit event sink.
type Journal interface {
	Append(e Event) error
	// Events returns the most recent events, newest first. limit <= 0 means
	// no limit.
	Events(limit int) ([]Event, error)
}

// ─── Treasury Interface ─────────────────────────────────────────────────────

// Treasury is the external value-transfer primitive at its interface
// boundary. The real fund rails are out of scope; the core only requires
// that a transfer either completes or reports failure, and that failure
// aborts the surrounding operation.
type Treasury interface {
	// Deposit credits an account with value arriving from outside the
	// system (payment attached to a call, or an incidental receive).
	Deposit(account string, amount decimal.Decimal) error
	// Transfer moves value between two accounts. It fails when the source
	// balance is insufficient. A zero amount is a no-op.
	Transfer(from, to string, amount decimal.Decimal) error
	BalanceOf(account string) decimal.Decimal
}

package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Distribution Engine ────────────────────────────────────────────────────
// Pull-based proportional distribution via a per-share accumulator.
//
// A deposit of amount R while s shares are outstanding advances the asset's
// accumulator by floor(R*Scale/s), an O(1) write regardless of the number of
// holders. Each holding carries a debt snapshot of the accumulator taken at
// its last settlement; the holder's entitlement is
// floor((accumulator-debt)*units/Scale), computed in O(1) whenever the
// holder chooses to interact. Deposit cost is thus decoupled from the number
// of people entitled to the revenue.

// Scale is the fixed-point factor for accumulator arithmetic. Integer
// truncation in the per-share division loses at most Scale⁻¹ of a value unit
// per share per deposit.
var Scale = decimal.New(1, 18)

// mulDivFloor returns floor(a*b/div) for non-negative operands. All scaled
// multiply/divide in the ledger goes through here so truncation toward zero
// is applied in exactly one place.
func mulDivFloor(a, b, div decimal.Decimal) decimal.Decimal {
	q, _ := a.Mul(b).QuoRem(div, 0)
	return q
}

// pendingOf computes a holding's unclaimed entitlement against the asset's
// current accumulator.
func pendingOf(a domain.Asset, h domain.Holding) decimal.Decimal {
	if h.Units == 0 {
		return decimal.Zero
	}
	return mulDivFloor(a.Accumulator.Sub(h.Debt), decimal.NewFromUint64(h.Units), Scale)
}

// Engine maintains each asset's cumulative per-share accumulator and
// computes and settles claimable amounts.
type Engine struct {
	registry *Registry
	book     *Book
	treasury domain.Treasury
}

// NewEngine creates a distribution engine.
func NewEngine(registry *Registry, book *Book, treasury domain.Treasury) *Engine {
	return &Engine{registry: registry, book: book, treasury: treasury}
}

// Deposit attributes revenue to the asset's outstanding shares. A deposit
// while no shares are outstanding is rejected: there is nobody to attribute
// the revenue to, and it would be permanently unclaimable.
func (e *Engine) Deposit(assetID domain.AssetID, amount decimal.Decimal) (domain.Asset, error) {
	if !amount.IsPositive() {
		return domain.Asset{}, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidArgument)
	}
	a, err := e.registry.Get(assetID)
	if err != nil {
		return domain.Asset{}, err
	}
	sold := a.SoldShares()
	if sold == 0 {
		return domain.Asset{}, fmt.Errorf("%w: asset %d", domain.ErrNothingToDistribute, assetID)
	}
	a.Accumulator = a.Accumulator.Add(mulDivFloor(amount, Scale, decimal.NewFromUint64(sold)))
	a.CumulativeRevenue = a.CumulativeRevenue.Add(amount)
	if err := e.registry.assets.PutAsset(a); err != nil {
		return domain.Asset{}, fmt.Errorf("store asset %d: %w", assetID, err)
	}
	return a, nil
}

// RecordExpense raises the asset's running expense total. Expenses are
// informational: they are never netted against the distribution accumulator.
func (e *Engine) RecordExpense(assetID domain.AssetID, amount decimal.Decimal) (domain.Asset, error) {
	if !amount.IsPositive() {
		return domain.Asset{}, fmt.Errorf("%w: expense amount must be positive", domain.ErrInvalidArgument)
	}
	a, err := e.registry.Get(assetID)
	if err != nil {
		return domain.Asset{}, err
	}
	a.CumulativeExpense = a.CumulativeExpense.Add(amount)
	if err := e.registry.assets.PutAsset(a); err != nil {
		return domain.Asset{}, fmt.Errorf("store asset %d: %w", assetID, err)
	}
	return a, nil
}

// Pending returns the holder's unclaimed entitlement for the asset.
// Pure read, no side effect.
func (e *Engine) Pending(assetID domain.AssetID, holder string) (decimal.Decimal, error) {
	a, err := e.registry.Get(assetID)
	if err != nil {
		return decimal.Zero, err
	}
	h, err := e.book.HoldingOf(assetID, holder)
	if err != nil {
		return decimal.Zero, err
	}
	return pendingOf(a, h), nil
}

// Settle pays out the holder's pending entitlement and re-bases their debt
// snapshot to the current accumulator. A zero pending amount is a silent
// no-op, so repeated settlement with no new deposits never re-pays.
//
// The debt update is committed before the treasury is invoked, so any
// re-entrant read during the transfer observes fully-settled state. If the
// treasury reports failure the prior snapshot is restored and the operation
// fails as a whole.
func (e *Engine) Settle(assetID domain.AssetID, holder string) (decimal.Decimal, error) {
	a, err := e.registry.Get(assetID)
	if err != nil {
		return decimal.Zero, err
	}
	h, err := e.book.HoldingOf(assetID, holder)
	if err != nil {
		return decimal.Zero, err
	}
	amount := pendingOf(a, h)
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	prevDebt := h.Debt
	h.Debt = a.Accumulator
	if err := e.book.put(h); err != nil {
		return decimal.Zero, err
	}
	if err := e.treasury.Transfer(domain.AccountContract, holder, amount); err != nil {
		h.Debt = prevDebt
		if restoreErr := e.book.put(h); restoreErr != nil {
			return decimal.Zero, fmt.Errorf("restore debt snapshot (%d, %s): %w", assetID, holder, restoreErr)
		}
		return decimal.Zero, fmt.Errorf("%w: settle (%d, %s): %v", domain.ErrTransferFailed, assetID, holder, err)
	}
	return amount, nil
}

// SettleAll settles every asset the holder has a position in, in registry
// enumeration order, and returns the total paid. It fails when nothing is
// pending anywhere.
func (e *Engine) SettleAll(holder string) (decimal.Decimal, error) {
	assets, err := e.registry.List()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assets {
		amount, err := e.Settle(a.ID, holder)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	if total.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: holder %s", domain.ErrNothingToClaim, holder)
	}
	return total, nil
}

package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Trade Gateway ──────────────────────────────────────────────────────────
// Buy and sell of unit shares. Every trade routes through a forced
// settlement BEFORE the balance mutation: changing units first would either
// grant the buyer retroactive claim to revenue accrued before the purchase,
// or under-pay the seller for revenue already accrued on the units sold.
// Settle-before-mutate is the load-bearing ordering of the whole design.

// TradeResult reports the outcome of a buy or sell.
type TradeResult struct {
	Asset   domain.Asset    `json:"asset"`
	Holding domain.Holding  `json:"holding"`
	Cost    decimal.Decimal `json:"cost"`    // exact cost (buy) or proceeds (sell)
	Settled decimal.Decimal `json:"settled"` // pending paid out before the balance change
	Refund  decimal.Decimal `json:"refund"`  // excess payment returned (buy only)
}

// Gateway executes share trades against the registry and the holdings book.
type Gateway struct {
	registry *Registry
	book     *Book
	engine   *Engine
	treasury domain.Treasury
}

// NewGateway creates a trade gateway.
func NewGateway(registry *Registry, book *Book, engine *Engine, treasury domain.Treasury) *Gateway {
	return &Gateway{registry: registry, book: book, engine: engine, treasury: treasury}
}

// Buy purchases units of an asset for the holder. The attached payment is
// taken into the contract account; any excess over the exact cost is
// returned to the holder through the treasury.
func (g *Gateway) Buy(assetID domain.AssetID, holder string, units uint64, payment decimal.Decimal) (TradeResult, error) {
	if holder == "" {
		return TradeResult{}, fmt.Errorf("%w: holder must not be empty", domain.ErrInvalidArgument)
	}
	if units == 0 {
		return TradeResult{}, fmt.Errorf("%w: units must be positive", domain.ErrInvalidArgument)
	}
	a, err := g.registry.Get(assetID)
	if err != nil {
		return TradeResult{}, err
	}
	if !a.Active {
		return TradeResult{}, fmt.Errorf("%w: asset %d", domain.ErrAssetInactive, assetID)
	}
	if units > a.AvailableShares {
		return TradeResult{}, fmt.Errorf("%w: want %d units, %d available", domain.ErrInsufficientShares, units, a.AvailableShares)
	}
	cost := a.PricePerUnit.Mul(decimal.NewFromUint64(units))
	if payment.LessThan(cost) {
		return TradeResult{}, fmt.Errorf("%w: need %s, got %s", domain.ErrInsufficientPayment, cost, payment)
	}

	// Checks done. The attached payment enters the contract account.
	if err := g.treasury.Deposit(domain.AccountContract, payment); err != nil {
		return TradeResult{}, fmt.Errorf("%w: take payment: %v", domain.ErrTransferFailed, err)
	}

	// Mandatory settlement against the pre-purchase unit count.
	settled := decimal.Zero
	prior, err := g.book.HoldingOf(assetID, holder)
	if err != nil {
		return TradeResult{}, err
	}
	if prior.Units > 0 {
		settled, err = g.engine.Settle(assetID, holder)
		if err != nil {
			// Hand the intake back so the aborted buy leaves no net effect.
			if refundErr := g.treasury.Transfer(domain.AccountContract, holder, payment); refundErr != nil {
				return TradeResult{}, fmt.Errorf("%w: return payment after failed settlement: %v", domain.ErrTransferFailed, refundErr)
			}
			return TradeResult{}, err
		}
	}

	h, err := g.book.HoldingOf(assetID, holder)
	if err != nil {
		return TradeResult{}, err
	}
	prevAsset, prevHolding := a, h

	a.AvailableShares -= units
	h.Units += units
	// Re-snapshot so the newly bought units start with zero pending.
	h.Debt = a.Accumulator
	if err := g.registry.assets.PutAsset(a); err != nil {
		return TradeResult{}, fmt.Errorf("store asset %d: %w", assetID, err)
	}
	if err := g.book.put(h); err != nil {
		return TradeResult{}, err
	}

	refund := payment.Sub(cost)
	if refund.IsPositive() {
		if err := g.treasury.Transfer(domain.AccountContract, holder, refund); err != nil {
			if restoreErr := g.restore(prevAsset, prevHolding); restoreErr != nil {
				return TradeResult{}, restoreErr
			}
			return TradeResult{}, fmt.Errorf("%w: refund excess payment: %v", domain.ErrTransferFailed, err)
		}
	}
	return TradeResult{Asset: a, Holding: h, Cost: cost, Settled: settled, Refund: refund}, nil
}

// Sell returns units of an asset to the available pool and pays the holder
// units * pricePerUnit out of the contract account.
func (g *Gateway) Sell(assetID domain.AssetID, holder string, units uint64) (TradeResult, error) {
	if holder == "" {
		return TradeResult{}, fmt.Errorf("%w: holder must not be empty", domain.ErrInvalidArgument)
	}
	if units == 0 {
		return TradeResult{}, fmt.Errorf("%w: units must be positive", domain.ErrInvalidArgument)
	}
	a, err := g.registry.Get(assetID)
	if err != nil {
		return TradeResult{}, err
	}
	if !a.Active {
		return TradeResult{}, fmt.Errorf("%w: asset %d", domain.ErrAssetInactive, assetID)
	}
	prior, err := g.book.HoldingOf(assetID, holder)
	if err != nil {
		return TradeResult{}, err
	}
	if prior.Units < units {
		return TradeResult{}, fmt.Errorf("%w: want %d units, hold %d", domain.ErrInsufficientHolding, units, prior.Units)
	}

	// Settle revenue accrued on the units about to be sold.
	settled, err := g.engine.Settle(assetID, holder)
	if err != nil {
		return TradeResult{}, err
	}

	h, err := g.book.HoldingOf(assetID, holder)
	if err != nil {
		return TradeResult{}, err
	}
	prevAsset, prevHolding := a, h

	h.Units -= units
	a.AvailableShares += units
	if err := g.registry.assets.PutAsset(a); err != nil {
		return TradeResult{}, fmt.Errorf("store asset %d: %w", assetID, err)
	}
	if err := g.book.put(h); err != nil {
		return TradeResult{}, err
	}

	proceeds := a.PricePerUnit.Mul(decimal.NewFromUint64(units))
	if err := g.treasury.Transfer(domain.AccountContract, holder, proceeds); err != nil {
		if restoreErr := g.restore(prevAsset, prevHolding); restoreErr != nil {
			return TradeResult{}, restoreErr
		}
		return TradeResult{}, fmt.Errorf("%w: pay sale proceeds: %v", domain.ErrTransferFailed, err)
	}
	return TradeResult{Asset: a, Holding: h, Cost: proceeds, Settled: settled}, nil
}

// restore puts back the pre-mutation asset and holding after a failed
// treasury interaction, so the aborted trade leaves no net effect.
func (g *Gateway) restore(a domain.Asset, h domain.Holding) error {
	if err := g.registry.assets.PutAsset(a); err != nil {
		return fmt.Errorf("restore asset %d: %w", a.ID, err)
	}
	return g.book.put(h)
}

// Package app wires the ledger core, guard, treasury, journal and metrics
// into one service facade. Every externally invoked operation is a single
// guarded unit: checks run first, state effects commit next, and the
// treasury is invoked last, so a failed operation leaves the ledger exactly
// as it was and a re-entrant read never observes half-updated state.
package app

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
	"github.com/fleetshare-network/fleetshare/internal/guard"
	"github.com/fleetshare-network/fleetshare/internal/infra/observability"
	"github.com/fleetshare-network/fleetshare/internal/ledger"
)

// Service exposes the external operations of the ownership ledger.
type Service struct {
	guard    *guard.Guard
	registry *ledger.Registry
	book     *ledger.Book
	engine   *ledger.Engine
	gateway  *ledger.Gateway
	view     *ledger.View
	treasury domain.Treasury
	journal  domain.Journal
}

// New assembles a service over the given stores, treasury and journal.
func New(assets domain.AssetStore, holdings domain.HoldingStore, treasury domain.Treasury, journal domain.Journal) *Service {
	registry := ledger.NewRegistry(assets)
	book := ledger.NewBook(holdings)
	engine := ledger.NewEngine(registry, book, treasury)
	return &Service{
		guard:    guard.New(),
		registry: registry,
		book:     book,
		engine:   engine,
		gateway:  ledger.NewGateway(registry, book, engine, treasury),
		view:     ledger.NewView(registry, book),
		treasury: treasury,
		journal:  journal,
	}
}

// record appends an audit event and refreshes the contract balance gauge.
func (s *Service) record(e domain.Event) error {
	if err := s.journal.Append(e); err != nil {
		return fmt.Errorf("append audit event %s: %w", e.Kind, err)
	}
	observability.ContractBalance.Set(s.treasury.BalanceOf(domain.AccountContract).InexactFloat64())
	return nil
}

// ─── Administrative Operations ──────────────────────────────────────────────

// CreateAsset registers a new asset.
func (s *Service) CreateAsset(name, imageRef string, totalShares uint64, pricePerUnit decimal.Decimal) (domain.Asset, error) {
	var a domain.Asset
	err := s.guard.Do(func() error {
		var err error
		a, err = s.registry.Create(name, imageRef, totalShares, pricePerUnit)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventAssetCreated)
		e.AssetID = a.ID
		e.Units = a.TotalShares
		e.Amount = a.PricePerUnit
		e.Note = a.Name
		return s.record(e)
	})
	if err == nil {
		observability.AssetsCreated.Inc()
	}
	return a, err
}

// SetAssetActive flips an asset's trading gate.
func (s *Service) SetAssetActive(id domain.AssetID, active bool) (domain.Asset, error) {
	var a domain.Asset
	err := s.guard.Do(func() error {
		var err error
		a, err = s.registry.SetActive(id, active)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventStatusChanged)
		e.AssetID = id
		e.Note = statusNote(active)
		return s.record(e)
	})
	return a, err
}

// DepositRevenue attributes revenue to an asset's outstanding shares. The
// deposited value enters the contract account after the accumulator update
// commits (mutate-then-transfer).
func (s *Service) DepositRevenue(id domain.AssetID, amount decimal.Decimal) (domain.Asset, error) {
	var a domain.Asset
	err := s.guard.Do(func() error {
		var err error
		a, err = s.engine.Deposit(id, amount)
		if err != nil {
			return err
		}
		if err := s.treasury.Deposit(domain.AccountContract, amount); err != nil {
			return fmt.Errorf("%w: take revenue deposit: %v", domain.ErrTransferFailed, err)
		}
		e := domain.NewEvent(domain.EventRevenueDeposited)
		e.AssetID = id
		e.Amount = amount
		e.Accumulator = a.Accumulator
		return s.record(e)
	})
	if err == nil {
		observability.RevenueDeposits.Inc()
		observability.RevenueAmount.Add(amount.InexactFloat64())
	}
	return a, err
}

// RecordExpense raises an asset's informational expense total.
func (s *Service) RecordExpense(id domain.AssetID, amount decimal.Decimal) (domain.Asset, error) {
	var a domain.Asset
	err := s.guard.Do(func() error {
		var err error
		a, err = s.engine.RecordExpense(id, amount)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventExpenseRecorded)
		e.AssetID = id
		e.Amount = amount
		return s.record(e)
	})
	return a, err
}

// WithdrawOperatorFunds moves value from the contract account to the
// operator account.
func (s *Service) WithdrawOperatorFunds(amount decimal.Decimal) error {
	return s.guard.Do(func() error {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrInvalidArgument)
		}
		if err := s.treasury.Transfer(domain.AccountContract, domain.AccountOperator, amount); err != nil {
			return fmt.Errorf("%w: withdraw operator funds: %v", domain.ErrTransferFailed, err)
		}
		e := domain.NewEvent(domain.EventFundsWithdrawn)
		e.Amount = amount
		return s.record(e)
	})
}

// ─── Holder Operations ──────────────────────────────────────────────────────

// BuyShares purchases units of an asset with the attached payment.
func (s *Service) BuyShares(id domain.AssetID, holder string, units uint64, payment decimal.Decimal) (ledger.TradeResult, error) {
	var res ledger.TradeResult
	err := s.guard.Do(func() error {
		var err error
		res, err = s.gateway.Buy(id, holder, units, payment)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventSharesBought)
		e.AssetID = id
		e.Holder = holder
		e.Units = units
		e.Amount = res.Cost
		e.Accumulator = res.Asset.Accumulator
		return s.record(e)
	})
	if err == nil {
		observability.Trades.WithLabelValues("buy").Inc()
		if res.Settled.IsPositive() {
			observability.PayoutAmount.Add(res.Settled.InexactFloat64())
		}
	}
	return res, err
}

// SellShares returns units of an asset and pays out the proceeds.
func (s *Service) SellShares(id domain.AssetID, holder string, units uint64) (ledger.TradeResult, error) {
	var res ledger.TradeResult
	err := s.guard.Do(func() error {
		var err error
		res, err = s.gateway.Sell(id, holder, units)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventSharesSold)
		e.AssetID = id
		e.Holder = holder
		e.Units = units
		e.Amount = res.Cost
		e.Accumulator = res.Asset.Accumulator
		return s.record(e)
	})
	if err == nil {
		observability.Trades.WithLabelValues("sell").Inc()
		if res.Settled.IsPositive() {
			observability.PayoutAmount.Add(res.Settled.InexactFloat64())
		}
	}
	return res, err
}

// Claim settles the holder's pending entitlement for one asset. A claim
// that finds nothing pending is rejected.
func (s *Service) Claim(id domain.AssetID, holder string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.guard.Do(func() error {
		var err error
		amount, err = s.engine.Settle(id, holder)
		if err != nil {
			return err
		}
		if amount.IsZero() {
			return fmt.Errorf("%w: asset %d, holder %s", domain.ErrNothingToClaim, id, holder)
		}
		e := domain.NewEvent(domain.EventEarningsClaimed)
		e.AssetID = id
		e.Holder = holder
		e.Amount = amount
		return s.record(e)
	})
	if err == nil {
		observability.Claims.Inc()
		observability.PayoutAmount.Add(amount.InexactFloat64())
	}
	return amount, err
}

// ClaimAll settles the holder's pending entitlement across every asset.
func (s *Service) ClaimAll(holder string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.guard.Do(func() error {
		var err error
		total, err = s.engine.SettleAll(holder)
		if err != nil {
			return err
		}
		e := domain.NewEvent(domain.EventEarningsClaimed)
		e.Holder = holder
		e.Amount = total
		e.Note = "claim all"
		return s.record(e)
	})
	if err == nil {
		observability.Claims.Inc()
		observability.PayoutAmount.Add(total.InexactFloat64())
	}
	return total, err
}

// Receive accepts incidental incoming value: the contract account is
// credited and the event recorded, without touching the ledger.
func (s *Service) Receive(from string, amount decimal.Decimal) error {
	return s.guard.Do(func() error {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: received amount must be positive", domain.ErrInvalidArgument)
		}
		if err := s.treasury.Deposit(domain.AccountContract, amount); err != nil {
			return fmt.Errorf("%w: receive funds: %v", domain.ErrTransferFailed, err)
		}
		e := domain.NewEvent(domain.EventFundsReceived)
		e.Amount = amount
		e.Note = from
		return s.record(e)
	})
}

// ─── Read-Only Operations ───────────────────────────────────────────────────

// GetAsset returns one asset.
func (s *Service) GetAsset(id domain.AssetID) (domain.Asset, error) {
	return s.registry.Get(id)
}

// ListAssets returns all assets in creation order.
func (s *Service) ListAssets() ([]domain.Asset, error) {
	return s.registry.List()
}

// AssetCount returns the number of registered assets.
func (s *Service) AssetCount() (int, error) {
	return s.registry.Count()
}

// SoldSharesOf returns the number of shares of an asset held by holders.
func (s *Service) SoldSharesOf(id domain.AssetID) (uint64, error) {
	a, err := s.registry.Get(id)
	if err != nil {
		return 0, err
	}
	return a.SoldShares(), nil
}

// HoldingOf returns one holder's position in one asset.
func (s *Service) HoldingOf(id domain.AssetID, holder string) (domain.Holding, error) {
	if _, err := s.registry.Get(id); err != nil {
		return domain.Holding{}, err
	}
	return s.book.HoldingOf(id, holder)
}

// PendingOf returns one holder's unclaimed entitlement in one asset.
func (s *Service) PendingOf(id domain.AssetID, holder string) (decimal.Decimal, error) {
	return s.engine.Pending(id, holder)
}

// PortfolioOf aggregates one holder's positions across all assets. The read
// takes the guard so it composes a consistent snapshot.
func (s *Service) PortfolioOf(holder string) (ledger.Portfolio, error) {
	var p ledger.Portfolio
	err := s.guard.Do(func() error {
		var err error
		p, err = s.view.PortfolioOf(holder)
		return err
	})
	return p, err
}

// ContractBalance returns the contract account balance.
func (s *Service) ContractBalance() decimal.Decimal {
	return s.treasury.BalanceOf(domain.AccountContract)
}

// Events returns the most recent audit events, newest first.
func (s *Service) Events(limit int) ([]domain.Event, error) {
	return s.journal.Events(limit)
}

func statusNote(active bool) string {
	if active {
		return "activated"
	}
	return "deactivated"
}

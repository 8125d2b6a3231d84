package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
	"github.com/fleetshare-network/fleetshare/internal/infra/memstore"
	"github.com/fleetshare-network/fleetshare/internal/infra/treasury"
)

// env bundles the core components over fresh in-memory state.
type env struct {
	store    *memstore.Store
	treas    *treasury.Ledger
	registry *Registry
	book     *Book
	engine   *Engine
	gateway  *Gateway
	view     *View
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New()
	treas := treasury.New()
	registry := NewRegistry(store)
	book := NewBook(store)
	engine := NewEngine(registry, book, treas)
	return &env{
		store:    store,
		treas:    treas,
		registry: registry,
		book:     book,
		engine:   engine,
		gateway:  NewGateway(registry, book, engine, treas),
		view:     NewView(registry, book),
	}
}

// createAsset registers a standard test asset: 100 shares at 1 per unit.
func (e *env) createAsset(t *testing.T) domain.Asset {
	t.Helper()
	a, err := e.registry.Create("Van 7", "vans/7.jpg", 100, dec(1))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return a
}

// fundContract simulates revenue value entering the contract account, which
// the service layer does after each accounting commit.
func (e *env) fundContract(t *testing.T, amount int64) {
	t.Helper()
	if err := e.treas.Deposit(domain.AccountContract, dec(amount)); err != nil {
		t.Fatalf("fund contract: %v", err)
	}
}

// checkConservation asserts availableShares + Σ holder units == totalShares.
func (e *env) checkConservation(t *testing.T, assetID domain.AssetID) {
	t.Helper()
	a, err := e.registry.Get(assetID)
	if err != nil {
		t.Fatalf("Get(%d) error: %v", assetID, err)
	}
	held, err := e.book.UnitsOutstanding(assetID)
	if err != nil {
		t.Fatalf("UnitsOutstanding(%d) error: %v", assetID, err)
	}
	if a.AvailableShares+held != a.TotalShares {
		t.Errorf("conservation violated: available %d + held %d != total %d",
			a.AvailableShares, held, a.TotalShares)
	}
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func equalDec(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetshare-network/fleetshare/internal/domain"
	"github.com/fleetshare-network/fleetshare/internal/infra/memstore"
	"github.com/fleetshare-network/fleetshare/internal/infra/treasury"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memstore.New()
	return New(store, store, treasury.New(), memstore.NewJournal())
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func latestEvent(t *testing.T, s *Service) domain.Event {
	t.Helper()
	events, err := s.Events(1)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	return events[0]
}

func TestService_CreateAssetRecordsEvent(t *testing.T) {
	s := newTestService(t)

	a, err := s.CreateAsset("Van 12", "vans/12.jpg", 100, dec(3))
	require.NoError(t, err)
	assert.Equal(t, domain.AssetID(1), a.ID)
	assert.Equal(t, uint64(100), a.AvailableShares)
	assert.True(t, a.Active)

	e := latestEvent(t, s)
	assert.Equal(t, domain.EventAssetCreated, e.Kind)
	assert.Equal(t, a.ID, e.AssetID)
	assert.Equal(t, "Van 12", e.Note)

	_, err = s.CreateAsset("", "", 100, dec(3))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestService_SetAssetActive(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 10, dec(1))
	require.NoError(t, err)

	a, err = s.SetAssetActive(a.ID, false)
	require.NoError(t, err)
	assert.False(t, a.Active)
	assert.Equal(t, "deactivated", latestEvent(t, s).Note)

	_, err = s.SetAssetActive(99, true)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestService_RevenueAndClaimLifecycle(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 100, dec(1))
	require.NoError(t, err)

	_, err = s.BuyShares(a.ID, "alice", 10, dec(10))
	require.NoError(t, err)
	assert.True(t, s.ContractBalance().Equal(dec(10)))

	_, err = s.DepositRevenue(a.ID, dec(50))
	require.NoError(t, err)
	assert.True(t, s.ContractBalance().Equal(dec(60)))
	assert.Equal(t, domain.EventRevenueDeposited, latestEvent(t, s).Kind)

	pending, err := s.PendingOf(a.ID, "alice")
	require.NoError(t, err)
	assert.True(t, pending.Equal(dec(50)))

	paid, err := s.Claim(a.ID, "alice")
	require.NoError(t, err)
	assert.True(t, paid.Equal(dec(50)))
	assert.True(t, s.ContractBalance().Equal(dec(10)))
	assert.Equal(t, domain.EventEarningsClaimed, latestEvent(t, s).Kind)

	// A second claim finds nothing pending.
	_, err = s.Claim(a.ID, "alice")
	assert.ErrorIs(t, err, domain.ErrNothingToClaim)
}

func TestService_ClaimAll(t *testing.T) {
	s := newTestService(t)
	a1, err := s.CreateAsset("Van 1", "", 100, dec(1))
	require.NoError(t, err)
	a2, err := s.CreateAsset("Van 2", "", 100, dec(1))
	require.NoError(t, err)

	_, err = s.BuyShares(a1.ID, "alice", 10, dec(10))
	require.NoError(t, err)
	_, err = s.BuyShares(a2.ID, "alice", 20, dec(20))
	require.NoError(t, err)
	_, err = s.DepositRevenue(a1.ID, dec(30))
	require.NoError(t, err)
	_, err = s.DepositRevenue(a2.ID, dec(40))
	require.NoError(t, err)

	total, err := s.ClaimAll("alice")
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(70)))

	_, err = s.ClaimAll("alice")
	assert.ErrorIs(t, err, domain.ErrNothingToClaim)
}

func TestService_RecordExpenseIsInformational(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 100, dec(1))
	require.NoError(t, err)
	_, err = s.BuyShares(a.ID, "alice", 10, dec(10))
	require.NoError(t, err)
	balance := s.ContractBalance()

	a, err = s.RecordExpense(a.ID, dec(25))
	require.NoError(t, err)
	assert.True(t, a.CumulativeExpense.Equal(dec(25)))
	assert.True(t, s.ContractBalance().Equal(balance), "expense must not move funds")
	assert.Equal(t, domain.EventExpenseRecorded, latestEvent(t, s).Kind)
}

func TestService_WithdrawOperatorFunds(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Receive("sponsor", dec(100)))

	require.NoError(t, s.WithdrawOperatorFunds(dec(40)))
	assert.True(t, s.ContractBalance().Equal(dec(60)))
	assert.Equal(t, domain.EventFundsWithdrawn, latestEvent(t, s).Kind)

	err := s.WithdrawOperatorFunds(dec(1000))
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	err = s.WithdrawOperatorFunds(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestService_Receive(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Receive("stray payment", dec(5)))
	assert.True(t, s.ContractBalance().Equal(dec(5)))

	e := latestEvent(t, s)
	assert.Equal(t, domain.EventFundsReceived, e.Kind)
	assert.Equal(t, "stray payment", e.Note)

	assert.ErrorIs(t, s.Receive("x", decimal.Zero), domain.ErrInvalidArgument)
}

func TestService_SellShares(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 100, dec(1))
	require.NoError(t, err)
	_, err = s.BuyShares(a.ID, "alice", 10, dec(10))
	require.NoError(t, err)

	res, err := s.SellShares(a.ID, "alice", 4)
	require.NoError(t, err)
	assert.True(t, res.Cost.Equal(dec(4)))
	assert.Equal(t, uint64(6), res.Holding.Units)
	assert.Equal(t, domain.EventSharesSold, latestEvent(t, s).Kind)

	_, err = s.SellShares(a.ID, "alice", 100)
	assert.ErrorIs(t, err, domain.ErrInsufficientHolding)
}

func TestService_PortfolioOf(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 100, dec(2))
	require.NoError(t, err)
	_, err = s.BuyShares(a.ID, "alice", 5, dec(10))
	require.NoError(t, err)

	p, err := s.PortfolioOf("alice")
	require.NoError(t, err)
	require.Len(t, p.Positions, 1)
	assert.True(t, p.TotalValue.Equal(dec(10)))
}

func TestService_ReadAccessors(t *testing.T) {
	s := newTestService(t)
	a, err := s.CreateAsset("Van", "", 100, dec(1))
	require.NoError(t, err)
	_, err = s.BuyShares(a.ID, "alice", 10, dec(10))
	require.NoError(t, err)

	got, err := s.GetAsset(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	all, err := s.ListAssets()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	n, err := s.AssetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sold, err := s.SoldSharesOf(a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), sold)

	h, err := s.HoldingOf(a.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), h.Units)

	_, err = s.HoldingOf(99, "alice")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	events, err := s.Events(0)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
}

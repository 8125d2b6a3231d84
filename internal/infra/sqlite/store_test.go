package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "fleetshare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_AssetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	id, err := db.NextAssetID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	a := domain.Asset{
		ID:                id,
		Name:              "Van 3",
		ImageRef:          "vans/3.jpg",
		TotalShares:       200,
		AvailableShares:   150,
		PricePerUnit:      decimal.RequireFromString("2.5"),
		CumulativeRevenue: decimal.NewFromInt(900),
		Accumulator:       decimal.RequireFromString("4500000000000000000"),
		Active:            true,
		CreatedAt:         time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, db.PutAsset(a))

	got, found, err := db.GetAsset(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.TotalShares, got.TotalShares)
	assert.Equal(t, a.AvailableShares, got.AvailableShares)
	assert.True(t, got.PricePerUnit.Equal(a.PricePerUnit))
	assert.True(t, got.Accumulator.Equal(a.Accumulator))
	assert.True(t, got.CreatedAt.Equal(a.CreatedAt))

	// Upsert updates in place.
	a.AvailableShares = 140
	require.NoError(t, db.PutAsset(a))
	got, _, err = db.GetAsset(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(140), got.AvailableShares)

	_, found, err = db.GetAsset(99)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDB_NextAssetIDAdvances(t *testing.T) {
	db := openTestDB(t)
	for want := uint64(1); want <= 4; want++ {
		id, err := db.NextAssetID()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestDB_ListAssetsOrdered(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		id, err := db.NextAssetID()
		require.NoError(t, err)
		require.NoError(t, db.PutAsset(domain.Asset{
			ID: id, Name: "A", TotalShares: 1, AvailableShares: 1,
			PricePerUnit: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
		}))
	}
	all, err := db.ListAssets()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, a := range all {
		assert.Equal(t, uint64(i+1), a.ID)
	}
}

func TestDB_HoldingRoundTrip(t *testing.T) {
	db := openTestDB(t)
	id, err := db.NextAssetID()
	require.NoError(t, err)
	require.NoError(t, db.PutAsset(domain.Asset{
		ID: id, Name: "Van", TotalShares: 10, AvailableShares: 10,
		PricePerUnit: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
	}))

	h := domain.Holding{AssetID: id, Holder: "alice", Units: 7, Debt: decimal.RequireFromString("3000000000000000000")}
	require.NoError(t, db.PutHolding(h))

	got, found, err := db.GetHolding(id, "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(7), got.Units)
	assert.True(t, got.Debt.Equal(h.Debt))

	h.Units = 2
	require.NoError(t, db.PutHolding(h))
	got, _, err = db.GetHolding(id, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Units)

	byHolder, err := db.HoldingsByHolder("alice")
	require.NoError(t, err)
	require.Len(t, byHolder, 1)

	byAsset, err := db.HoldingsByAsset(id)
	require.NoError(t, err)
	require.Len(t, byAsset, 1)

	_, found, err = db.GetHolding(id, "bob")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDB_JournalNewestFirst(t *testing.T) {
	db := openTestDB(t)
	base := time.Now().UTC()
	for i, kind := range []domain.EventKind{domain.EventAssetCreated, domain.EventSharesBought, domain.EventEarningsClaimed} {
		e := domain.NewEvent(kind)
		e.Time = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Append(e))
	}

	events, err := db.Events(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventEarningsClaimed, events[0].Kind)
	assert.Equal(t, domain.EventSharesBought, events[1].Kind)

	all, err := db.Events(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDB_Treasury(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Deposit(domain.AccountContract, decimal.NewFromInt(100)))
	assert.True(t, db.BalanceOf(domain.AccountContract).Equal(decimal.NewFromInt(100)))

	require.NoError(t, db.Transfer(domain.AccountContract, "alice", decimal.NewFromInt(30)))
	assert.True(t, db.BalanceOf(domain.AccountContract).Equal(decimal.NewFromInt(70)))
	assert.True(t, db.BalanceOf("alice").Equal(decimal.NewFromInt(30)))

	// Insufficient source balance fails and moves nothing.
	err := db.Transfer(domain.AccountContract, "alice", decimal.NewFromInt(71))
	require.Error(t, err)
	assert.True(t, db.BalanceOf(domain.AccountContract).Equal(decimal.NewFromInt(70)))
	assert.True(t, db.BalanceOf("alice").Equal(decimal.NewFromInt(30)))

	assert.True(t, db.BalanceOf("nobody").IsZero())
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetshare.db")
	db, err := Open(path)
	require.NoError(t, err)

	id, err := db.NextAssetID()
	require.NoError(t, err)
	require.NoError(t, db.PutAsset(domain.Asset{
		ID: id, Name: "Survivor", TotalShares: 10, AvailableShares: 10,
		PricePerUnit: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, found, err := db.GetAsset(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Survivor", got.Name)

	next, err := db.NextAssetID()
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}

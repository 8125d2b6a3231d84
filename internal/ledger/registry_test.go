package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

func TestRegistry_Create(t *testing.T) {
	e := newEnv(t)

	a, err := e.registry.Create("Taxi 12", "taxis/12.jpg", 500, dec(3))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if a.ID != 1 {
		t.Errorf("first asset id = %d, want 1", a.ID)
	}
	if a.AvailableShares != 500 {
		t.Errorf("AvailableShares = %d, want 500", a.AvailableShares)
	}
	if !a.Accumulator.IsZero() {
		t.Errorf("Accumulator = %s, want 0", a.Accumulator)
	}
	if !a.Active {
		t.Error("new asset should be active")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRegistry_Create_Invalid(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name        string
		assetName   string
		totalShares uint64
		price       decimal.Decimal
	}{
		{"empty name", "", 100, dec(1)},
		{"blank name", "   ", 100, dec(1)},
		{"zero shares", "Van", 0, dec(1)},
		{"zero price", "Van", 100, dec(0)},
		{"negative price", "Van", 100, dec(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.registry.Create(tt.assetName, "", tt.totalShares, tt.price)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("Create() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRegistry_SequentialIDs(t *testing.T) {
	e := newEnv(t)
	for want := uint64(1); want <= 3; want++ {
		a, err := e.registry.Create("Bus", "", 10, dec(1))
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if a.ID != want {
			t.Errorf("asset id = %d, want %d", a.ID, want)
		}
	}
	n, err := e.registry.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestRegistry_ListOrder(t *testing.T) {
	e := newEnv(t)
	names := []string{"Van A", "Van B", "Van C"}
	for _, name := range names {
		if _, err := e.registry.Create(name, "", 10, dec(1)); err != nil {
			t.Fatalf("Create(%s) error: %v", name, err)
		}
	}
	all, err := e.registry.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for i, a := range all {
		if a.Name != names[i] {
			t.Errorf("List()[%d].Name = %q, want %q", i, a.Name, names[i])
		}
	}
}

func TestRegistry_SetActive(t *testing.T) {
	e := newEnv(t)
	a := e.createAsset(t)

	updated, err := e.registry.SetActive(a.ID, false)
	if err != nil {
		t.Fatalf("SetActive() error: %v", err)
	}
	if updated.Active {
		t.Error("asset should be inactive")
	}
	// The flag flip must not touch balances.
	if updated.AvailableShares != a.AvailableShares {
		t.Errorf("AvailableShares changed: %d -> %d", a.AvailableShares, updated.AvailableShares)
	}
}

func TestRegistry_NotFound(t *testing.T) {
	e := newEnv(t)
	if _, err := e.registry.Get(42); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("Get(42) error = %v, want ErrAssetNotFound", err)
	}
	if _, err := e.registry.SetActive(42, true); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("SetActive(42) error = %v, want ErrAssetNotFound", err)
	}
}

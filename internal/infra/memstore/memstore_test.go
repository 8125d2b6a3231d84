package memstore

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

func TestStore_AssetRoundTrip(t *testing.T) {
	s := New()

	id, err := s.NextAssetID()
	if err != nil {
		t.Fatalf("NextAssetID() error: %v", err)
	}
	if id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}

	a := domain.Asset{ID: id, Name: "Van 1", TotalShares: 100, AvailableShares: 100, PricePerUnit: decimal.NewFromInt(2), Active: true}
	if err := s.PutAsset(a); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}

	got, found, err := s.GetAsset(id)
	if err != nil || !found {
		t.Fatalf("GetAsset() = found %v, err %v", found, err)
	}
	if got.Name != "Van 1" || got.TotalShares != 100 {
		t.Errorf("GetAsset() = %+v", got)
	}

	_, found, err = s.GetAsset(99)
	if err != nil {
		t.Fatalf("GetAsset(99) error: %v", err)
	}
	if found {
		t.Error("GetAsset(99) found a ghost asset")
	}
}

func TestStore_ListPreservesCreationOrder(t *testing.T) {
	s := New()
	for i := 1; i <= 3; i++ {
		id, _ := s.NextAssetID()
		if err := s.PutAsset(domain.Asset{ID: id}); err != nil {
			t.Fatalf("PutAsset() error: %v", err)
		}
	}
	// Updating an existing asset must not move it.
	if err := s.PutAsset(domain.Asset{ID: 1, Name: "updated"}); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}

	all, err := s.ListAssets()
	if err != nil {
		t.Fatalf("ListAssets() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, a := range all {
		if a.ID != domain.AssetID(i+1) {
			t.Errorf("ListAssets()[%d].ID = %d, want %d", i, a.ID, i+1)
		}
	}
}

func TestStore_Holdings(t *testing.T) {
	s := New()
	holdings := []domain.Holding{
		{AssetID: 2, Holder: "alice", Units: 5},
		{AssetID: 1, Holder: "alice", Units: 10},
		{AssetID: 1, Holder: "bob", Units: 3},
	}
	for _, h := range holdings {
		if err := s.PutHolding(h); err != nil {
			t.Fatalf("PutHolding() error: %v", err)
		}
	}

	got, found, err := s.GetHolding(1, "alice")
	if err != nil || !found {
		t.Fatalf("GetHolding() = found %v, err %v", found, err)
	}
	if got.Units != 10 {
		t.Errorf("Units = %d, want 10", got.Units)
	}

	byHolder, err := s.HoldingsByHolder("alice")
	if err != nil {
		t.Fatalf("HoldingsByHolder() error: %v", err)
	}
	if len(byHolder) != 2 || byHolder[0].AssetID != 1 || byHolder[1].AssetID != 2 {
		t.Errorf("HoldingsByHolder() = %+v, want asset-id order", byHolder)
	}

	byAsset, err := s.HoldingsByAsset(1)
	if err != nil {
		t.Fatalf("HoldingsByAsset() error: %v", err)
	}
	if len(byAsset) != 2 {
		t.Errorf("len(HoldingsByAsset(1)) = %d, want 2", len(byAsset))
	}
}

func TestJournal_NewestFirst(t *testing.T) {
	j := NewJournal()
	kinds := []domain.EventKind{domain.EventAssetCreated, domain.EventSharesBought, domain.EventEarningsClaimed}
	for _, k := range kinds {
		if err := j.Append(domain.NewEvent(k)); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	events, err := j.Events(2)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Kind != domain.EventEarningsClaimed || events[1].Kind != domain.EventSharesBought {
		t.Errorf("Events() order = [%s, %s], want newest first", events[0].Kind, events[1].Kind)
	}

	all, err := j.Events(0)
	if err != nil {
		t.Fatalf("Events(0) error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Events(0) len = %d, want 3", len(all))
	}
}

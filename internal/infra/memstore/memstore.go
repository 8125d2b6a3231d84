// Package memstore implements the domain stores as in-process maps. It backs
// tests and ephemeral daemon runs; the sqlite store is the durable variant.
package memstore

import (
	"sort"
	"sync"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

type holdingKey struct {
	assetID domain.AssetID
	holder  string
}

// Store holds all ledger records: Map<AssetID, Asset>,
// Map<(AssetID, Holder), Holding> and the registry id counter. Nothing else.
type Store struct {
	mu       sync.RWMutex
	assets   map[domain.AssetID]domain.Asset
	order    []domain.AssetID
	holdings map[holdingKey]domain.Holding
	nextID   domain.AssetID
}

// New creates an empty store.
func New() *Store {
	return &Store{
		assets:   make(map[domain.AssetID]domain.Asset),
		holdings: make(map[holdingKey]domain.Holding),
		nextID:   1,
	}
}

// ─── AssetStore ─────────────────────────────────────────────────────────────

// PutAsset inserts or replaces an asset, preserving first-seen order for
// enumeration.
func (s *Store) PutAsset(a domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assets[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	s.assets[a.ID] = a
	return nil
}

// GetAsset looks up an asset by id.
func (s *Store) GetAsset(id domain.AssetID) (domain.Asset, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, found := s.assets[id]
	return a, found, nil
}

// ListAssets returns all assets in creation order.
func (s *Store) ListAssets() ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Asset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.assets[id])
	}
	return out, nil
}

// NextAssetID returns and advances the sequential id counter.
func (s *Store) NextAssetID() (domain.AssetID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id, nil
}

// ─── HoldingStore ───────────────────────────────────────────────────────────

// PutHolding inserts or replaces a holding.
func (s *Store) PutHolding(h domain.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings[holdingKey{h.AssetID, h.Holder}] = h
	return nil
}

// GetHolding looks up one (asset, holder) position.
func (s *Store) GetHolding(assetID domain.AssetID, holder string) (domain.Holding, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, found := s.holdings[holdingKey{assetID, holder}]
	return h, found, nil
}

// HoldingsByHolder returns the holder's positions in asset-id order.
func (s *Store) HoldingsByHolder(holder string) ([]domain.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Holding
	for k, h := range s.holdings {
		if k.holder == holder {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out, nil
}

// HoldingsByAsset returns every position in one asset.
func (s *Store) HoldingsByAsset(assetID domain.AssetID) ([]domain.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Holding
	for k, h := range s.holdings {
		if k.assetID == assetID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Holder < out[j].Holder })
	return out, nil
}

// ─── Journal ────────────────────────────────────────────────────────────────

// Journal is an in-memory append-only audit event sink.
type Journal struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append records one event.
func (j *Journal) Append(e domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
	return nil
}

// Events returns the most recent events, newest first.
func (j *Journal) Events(limit int) ([]domain.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	n := len(j.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}

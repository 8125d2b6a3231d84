package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Audit Events ───────────────────────────────────────────────────────────
// Every mutating operation appends exactly one event to the journal. Events
// form the append-only audit trail external observers rely on; they are never
// read back for any ledger computation.

// EventKind classifies an audit event.
type EventKind string

const (
	EventAssetCreated     EventKind = "ASSET_CREATED"
	EventSharesBought     EventKind = "SHARES_BOUGHT"
	EventSharesSold       EventKind = "SHARES_SOLD"
	EventRevenueDeposited EventKind = "REVENUE_DEPOSITED"
	EventEarningsClaimed  EventKind = "EARNINGS_CLAIMED"
	EventExpenseRecorded  EventKind = "EXPENSE_RECORDED"
	EventStatusChanged    EventKind = "STATUS_CHANGED"
	EventFundsWithdrawn   EventKind = "FUNDS_WITHDRAWN"
	EventFundsReceived    EventKind = "FUNDS_RECEIVED"
)

// Event is a single row in the append-only audit journal.
type Event struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Kind    EventKind `json:"kind"`
	AssetID AssetID   `json:"asset_id,omitempty"`
	Holder  string    `json:"holder,omitempty"`
	Units   uint64    `json:"units,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	// Accumulator records the asset's accumulator value after the operation,
	// where the operation touches one.
	Accumulator decimal.Decimal `json:"accumulator"`
	Note        string          `json:"note,omitempty"`
}

// NewEvent creates an event with a fresh id and the current time.
func NewEvent(kind EventKind) Event {
	return Event{
		ID:   uuid.NewString(),
		Time: time.Now().UTC(),
		Kind: kind,
	}
}

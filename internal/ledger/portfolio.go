package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// ─── Portfolio View ─────────────────────────────────────────────────────────

// Position is one non-empty holding of a portfolio.
type Position struct {
	AssetID      domain.AssetID  `json:"asset_id"`
	Name         string          `json:"name"`
	Units        uint64          `json:"units"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Value        decimal.Decimal `json:"value"`
	Pending      decimal.Decimal `json:"pending"`
}

// Portfolio is the read-only aggregation of one holder across all assets.
type Portfolio struct {
	Holder       string          `json:"holder"`
	Positions    []Position      `json:"positions"`
	TotalValue   decimal.Decimal `json:"total_value"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

// View composes registry, book and engine outputs into per-holder
// portfolios. Purely derived; no state mutation.
type View struct {
	registry *Registry
	book     *Book
}

// NewView creates a portfolio view.
func NewView(registry *Registry, book *Book) *View {
	return &View{registry: registry, book: book}
}

// PortfolioOf returns the holder's positions in registry enumeration order
// plus the portfolio totals. Two passes: the first sizes the result, the
// second fills it.
func (v *View) PortfolioOf(holder string) (Portfolio, error) {
	assets, err := v.registry.List()
	if err != nil {
		return Portfolio{}, err
	}

	held := 0
	holdings := make([]domain.Holding, len(assets))
	for i, a := range assets {
		h, err := v.book.HoldingOf(a.ID, holder)
		if err != nil {
			return Portfolio{}, err
		}
		holdings[i] = h
		if h.Units > 0 {
			held++
		}
	}

	p := Portfolio{
		Holder:       holder,
		Positions:    make([]Position, 0, held),
		TotalValue:   decimal.Zero,
		TotalPending: decimal.Zero,
	}
	for i, a := range assets {
		h := holdings[i]
		if h.Units == 0 {
			continue
		}
		value := a.PricePerUnit.Mul(decimal.NewFromUint64(h.Units))
		pending := pendingOf(a, h)
		p.Positions = append(p.Positions, Position{
			AssetID:      a.ID,
			Name:         a.Name,
			Units:        h.Units,
			PricePerUnit: a.PricePerUnit,
			Value:        value,
			Pending:      pending,
		})
		p.TotalValue = p.TotalValue.Add(value)
		p.TotalPending = p.TotalPending.Add(pending)
	}
	return p, nil
}

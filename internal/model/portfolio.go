package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot represents one discrete purchase event of a ticker.
// Lots are immutable once appended; they are never edited or merged,
// only discarded in bulk when the owning Holding is removed.
type Lot struct {
	ID           string          `json:"id"`
	Ticker       string          `json:"ticker"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}

// Total returns the lot's cost, quantity times price per share.
func (l Lot) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Holding is the aggregate of all Lots for one ticker.
//
// Quantity and TotalCost are maintained incrementally on AddLot and are
// never re-derived from the lots. Out-of-band lot mutation is forbidden;
// the invariant Quantity == sum(lot quantities) and
// TotalCost == sum(lot totals) holds for every append sequence.
type Holding struct {
	Ticker    string          `json:"ticker"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Lots      []Lot           `json:"lots"`
}

// AverageCost returns TotalCost / Quantity, or zero when no shares are held.
func (h Holding) AverageCost() decimal.Decimal {
	if h.Quantity == 0 {
		return decimal.Zero
	}
	return h.TotalCost.Div(decimal.NewFromInt(h.Quantity))
}

// AddLot appends a lot and updates the holding aggregates in the same step.
func (h *Holding) AddLot(lot Lot) {
	h.Quantity += lot.Quantity
	h.TotalCost = h.TotalCost.Add(lot.Total())
	h.Lots = append(h.Lots, lot)
}

// Portfolio maps ticker symbols to holdings.
type Portfolio map[string]Holding

// Package stats accumulates session-scoped counters for the liquidation feed:
// accepted and failed frames plus gross liquidated notional per side.
//
// Display fields stay verbatim strings in the event model; this package parses
// its own decimal copies for aggregation only.
package stats

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/liqmon/liqmon/internal/model"
)

// Totals is an immutable snapshot of session counters.
type Totals struct {
	Accepted       int64 `json:"accepted"`
	DecodeFailures int64 `json:"decode_failures"`
	ParseSkips     int64 `json:"parse_skips"`

	BuyCount  int64 `json:"buy_count"`
	SellCount int64 `json:"sell_count"`

	BuyNotional  decimal.Decimal `json:"buy_notional"`
	SellNotional decimal.Decimal `json:"sell_notional"`
}

// Notional returns the combined notional across both sides.
func (t Totals) Notional() decimal.Decimal {
	return t.BuyNotional.Add(t.SellNotional)
}

// Tracker accumulates counters. Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex
	t  Totals
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordEvent counts one accepted event and accumulates its notional
// (last filled quantity x average price, falling back to order price when no
// average is present). Events whose decimal fields do not parse still count
// as accepted; only the notional contribution is skipped.
func (tr *Tracker) RecordEvent(ev model.Event) {
	notional, ok := eventNotional(ev)

	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.t.Accepted++
	switch ev.Side {
	case model.SideBuy:
		tr.t.BuyCount++
		if ok {
			tr.t.BuyNotional = tr.t.BuyNotional.Add(notional)
		}
	case model.SideSell:
		tr.t.SellCount++
		if ok {
			tr.t.SellNotional = tr.t.SellNotional.Add(notional)
		}
	}
	if !ok {
		tr.t.ParseSkips++
	}
}

// RecordDecodeFailure counts one dropped frame.
func (tr *Tracker) RecordDecodeFailure() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.t.DecodeFailures++
}

// Totals returns a snapshot of the current counters.
func (tr *Tracker) Totals() Totals {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.t
}

func eventNotional(ev model.Event) (decimal.Decimal, bool) {
	qty, err := decimal.NewFromString(ev.LastQty)
	if err != nil {
		return decimal.Decimal{}, false
	}

	price, err := decimal.NewFromString(ev.AvgPrice)
	if err != nil || price.IsZero() {
		price, err = decimal.NewFromString(ev.Price)
		if err != nil {
			return decimal.Decimal{}, false
		}
	}

	return qty.Mul(price), true
}

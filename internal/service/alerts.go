package service

import "time"

// Tier is the notification urgency assigned to a run's best offer.
type Tier int

const (
	TierNone Tier = iota
	TierTarget
	TierGood
	TierBelowCeiling
	TierPriceDrop
)

func (t Tier) String() string {
	switch t {
	case TierTarget:
		return "target"
	case TierGood:
		return "good"
	case TierBelowCeiling:
		return "below-ceiling"
	case TierPriceDrop:
		return "price-drop"
	}
	return "none"
}

// Thresholds holds the four configured price thresholds. Target <= Good <=
// AlwaysBelow is expected but not enforced; rules are evaluated in order, so
// an inverted configuration silently changes which tier fires first.
type Thresholds struct {
	Target      float64
	Good        float64
	AlwaysBelow float64
	MinDrop     float64
}

// ClassifyPrice assigns a tier to a per-person price given the last persisted
// price. First matching rule wins; the drop rule is strict, so a drop exactly
// equal to MinDrop does not notify.
func ClassifyPrice(price, lastPrice float64, th Thresholds) Tier {
	switch {
	case price <= th.Target:
		return TierTarget
	case price <= th.Good:
		return TierGood
	case price <= th.AlwaysBelow:
		return TierBelowCeiling
	case price < lastPrice-th.MinDrop:
		return TierPriceDrop
	}
	return TierNone
}

// RunOutcome is the decision for one run. Best is nil when no source priced
// the trip; PreviousPrice is what history held before the run.
type RunOutcome struct {
	Best          *PriceQuote
	Tier          Tier
	PreviousPrice float64
}

// Engine compares a run's quotes against the thresholds and the persisted
// price history.
type Engine struct {
	history    HistoryStore
	thresholds Thresholds
	now        func() time.Time
}

func NewEngine(history HistoryStore, th Thresholds) *Engine {
	return &Engine{history: history, thresholds: th, now: time.Now}
}

// Evaluate picks the cheapest priced quote, classifies it and records it in
// history. A run with no priced quote returns Best == nil and leaves history
// untouched.
func (e *Engine) Evaluate(quotes []PriceQuote) (RunOutcome, error) {
	var best *PriceQuote
	for i := range quotes {
		q := &quotes[i]
		if q.Price == nil {
			continue
		}
		if best == nil || *q.Price < *best.Price {
			best = q
		}
	}

	last := e.history.LastPrice()
	if best == nil {
		return RunOutcome{Tier: TierNone, PreviousPrice: last}, nil
	}

	out := RunOutcome{
		Best:          best,
		Tier:          ClassifyPrice(*best.Price, last, e.thresholds),
		PreviousPrice: last,
	}
	if err := e.history.Record(*best.Price, best.TripType, e.now()); err != nil {
		return out, err
	}
	return out, nil
}

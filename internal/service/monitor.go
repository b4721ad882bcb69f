package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/you/go-flight-monitor/internal/config"
	"github.com/you/go-flight-monitor/internal/notify"
)

const dateLayout = "2006-01-02"

// Monitor drives one price-check run: the ideal window plus the closest
// flexible date combinations, reduced to a best offer and a notification
// decision.
type Monitor struct {
	cfg      *config.Config
	window   TripWindow
	agg      *Aggregator
	engine   *Engine
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewMonitor(cfg *config.Config, agg *Aggregator, engine *Engine, notifier notify.Notifier, log zerolog.Logger) (*Monitor, error) {
	departure, err := time.Parse(dateLayout, cfg.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("bad departure_date: %w", err)
	}
	ret, err := time.Parse(dateLayout, cfg.ReturnDate)
	if err != nil {
		return nil, fmt.Errorf("bad return_date: %w", err)
	}
	if !ret.After(departure) {
		return nil, fmt.Errorf("return_date %s is not after departure_date %s", cfg.ReturnDate, cfg.DepartureDate)
	}
	return &Monitor{
		cfg:      cfg,
		window:   TripWindow{Departure: departure, Return: ret},
		agg:      agg,
		engine:   engine,
		notifier: notifier,
		log:      log,
	}, nil
}

// CheckPrices performs one run. Only a credential failure or context
// cancellation aborts it; everything else degrades to "no quote from this
// source" and the run carries on.
func (m *Monitor) CheckPrices(ctx context.Context) (RunOutcome, error) {
	m.log.Info().
		Str("route", m.cfg.Origin+"-"+m.cfg.Destination).
		Str("departure", m.cfg.DepartureDate).
		Str("return", m.cfg.ReturnDate).
		Msg("checking prices")

	var quotes []PriceQuote

	idealResults, err := m.agg.Resolve(ctx, m.cfg.DepartureDate, m.cfg.ReturnDate, m.cfg.Passengers, TripIdeal)
	if err != nil {
		return RunOutcome{}, err
	}
	quotes = append(quotes, collectQuotes(idealResults)...)

	combos := GenerateCombinations(m.window, DateOptions{
		Offsets:           DirectFlightOffsets,
		FlexibilityDays:   m.cfg.FlexibilityDays,
		MinDurationDays:   m.cfg.MinTripDays,
		MaxDurationDays:   m.cfg.MaxTripDays,
		IdealDurationDays: m.cfg.IdealTripDays,
	})
	m.log.Debug().Int("combinations", len(combos)).Msg("generated flexible date combinations")
	if len(combos) > m.cfg.MaxFlexibleChecks {
		combos = combos[:m.cfg.MaxFlexibleChecks]
	}

	for _, combo := range combos {
		results, err := m.agg.Resolve(ctx,
			combo.Departure.Format(dateLayout),
			combo.Return.Format(dateLayout),
			m.cfg.Passengers, TripFlexible)
		if err != nil {
			return RunOutcome{}, err
		}
		quotes = append(quotes, collectQuotes(results)...)
	}

	outcome, err := m.engine.Evaluate(quotes)
	if err != nil {
		m.log.Error().Err(err).Msg("recording price history")
	}
	if outcome.Best == nil {
		m.log.Info().Msg("no price found today")
		return outcome, nil
	}

	m.log.Info().
		Float64("price", *outcome.Best.Price).
		Str("trip_type", outcome.Best.TripType).
		Str("tier", outcome.Tier.String()).
		Msg("best price today")

	if outcome.Tier == TierNone {
		return outcome, nil
	}

	if err := m.notifier.SendAlert(ctx, m.alertPayload(outcome)); err != nil {
		m.log.Error().Err(err).Msg("sending notification")
	}
	return outcome, nil
}

func collectQuotes(results []SourceResult) []PriceQuote {
	var out []PriceQuote
	for _, r := range results {
		if r.Quote != nil {
			out = append(out, *r.Quote)
		}
	}
	return out
}

func (m *Monitor) alertPayload(out RunOutcome) notify.AlertPayload {
	kind := notify.KindBelowCeiling
	switch out.Tier {
	case TierTarget:
		kind = notify.KindTarget
	case TierGood:
		kind = notify.KindGood
	case TierPriceDrop:
		kind = notify.KindPriceDrop
	}
	return notify.AlertPayload{
		Kind:          kind,
		Origin:        m.cfg.Origin,
		Destination:   m.cfg.Destination,
		Departure:     out.Best.Departure,
		Return:        out.Best.Return,
		TripType:      out.Best.TripType,
		Source:        out.Best.Source,
		Link:          out.Best.Link,
		Price:         *out.Best.Price,
		PreviousPrice: out.PreviousPrice,
		Passengers:    m.cfg.Passengers,
		BaselinePrice: m.cfg.BaselinePrice,
		TargetPrice:   m.cfg.TargetPrice,
		GoodPrice:     m.cfg.GoodPrice,
		NotifyBelow:   m.cfg.AlwaysNotifyBelow,
	}
}

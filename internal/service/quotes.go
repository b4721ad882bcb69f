package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/you/go-flight-monitor/internal/providers"
	"golang.org/x/sync/errgroup"
)

const (
	TripIdeal    = "ideal"
	TripFlexible = "flexible"
)

// PriceQuote is one source's result for one date pair. Price is nil when the
// source yielded no priced offer and only a search link is available.
type PriceQuote struct {
	Price     *float64 `json:"price"`
	Source    string   `json:"source"`
	Link      string   `json:"link"`
	TripType  string   `json:"trip_type"`
	Departure string   `json:"departure"`
	Return    string   `json:"return"`
}

// SourceResult carries either a quote or the per-source error, never both.
type SourceResult struct {
	Source string      `json:"source"`
	Quote  *PriceQuote `json:"quote,omitempty"`
	Err    error       `json:"-"`
}

// Aggregator resolves one date pair across the enabled sources. Priced
// providers are queried in parallel; link-only sources never hit the network.
type Aggregator struct {
	origin      string
	destination string
	priced      map[string]providers.QuoteProvider
	enabled     []string
	timeout     time.Duration
	log         zerolog.Logger
}

func NewAggregator(origin, destination string, priced []providers.QuoteProvider, enabled []string, timeout time.Duration, log zerolog.Logger) *Aggregator {
	byName := make(map[string]providers.QuoteProvider, len(priced))
	for _, p := range priced {
		byName[p.Name()] = p
	}
	return &Aggregator{
		origin:      origin,
		destination: destination,
		priced:      byName,
		enabled:     enabled,
		timeout:     timeout,
		log:         log,
	}
}

// Resolve returns one SourceResult per enabled source, in the configured
// order, for the monitored route. Per-source failures (rate limits, malformed
// responses) land in the matching entry; only a credential failure aborts,
// since no provider call can proceed without a token.
func (a *Aggregator) Resolve(ctx context.Context, departureDate, returnDate string, adults int, tripType string) ([]SourceResult, error) {
	return a.ResolveRoute(ctx, a.origin, a.destination, departureDate, returnDate, adults, tripType)
}

// ResolveRoute is Resolve for an arbitrary origin/destination, used by
// on-demand lookups.
func (a *Aggregator) ResolveRoute(ctx context.Context, origin, destination, departureDate, returnDate string, adults int, tripType string) ([]SourceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results := make([]SourceResult, len(a.enabled))
	g, ctx := errgroup.WithContext(ctx)

	for i, src := range a.enabled {
		results[i].Source = src

		p, isPriced := a.priced[src]
		if !isPriced {
			display, known := providers.LinkSites[src]
			if !known {
				results[i].Err = fmt.Errorf("unknown source %q", src)
				continue
			}
			results[i].Quote = &PriceQuote{
				Source:    display,
				Link:      providers.BuildLink(display, origin, destination, departureDate, returnDate, adults),
				TripType:  tripType,
				Departure: departureDate,
				Return:    returnDate,
			}
			continue
		}

		i, p := i, p
		g.Go(func() error {
			q, err := a.resolveProvider(ctx, p, origin, destination, departureDate, returnDate, adults, tripType)
			if err != nil {
				var authErr *providers.AuthError
				if errors.As(err, &authErr) {
					return err
				}
				a.log.Warn().Str("source", p.Name()).Err(err).Msg("source failed")
				results[i].Err = err
				return nil
			}
			results[i].Quote = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveProvider reduces one provider's offers to its cheapest as the
// representative quote, or to an unpriced fallback link when the provider
// returned nothing.
func (a *Aggregator) resolveProvider(ctx context.Context, p providers.QuoteProvider, origin, destination, departureDate, returnDate string, adults int, tripType string) (*PriceQuote, error) {
	offers, err := p.Search(ctx, providers.SearchQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Adults:        adults,
		Currency:      "EUR",
	})
	if err != nil {
		return nil, err
	}

	// The provider exposes no deep link of its own, so point at the generic
	// search page for the same parameters.
	link := providers.BuildLink("Google Flights", origin, destination, departureDate, returnDate, adults)

	if len(offers) == 0 {
		return &PriceQuote{
			Source:    p.Name(),
			Link:      link,
			TripType:  tripType,
			Departure: departureDate,
			Return:    returnDate,
		}, nil
	}

	best := offers[0].TotalPrice
	for _, o := range offers[1:] {
		if o.TotalPrice < best {
			best = o.TotalPrice
		}
	}
	price := math.Round(best)

	return &PriceQuote{
		Price:     &price,
		Source:    p.Name(),
		Link:      link,
		TripType:  tripType,
		Departure: departureDate,
		Return:    returnDate,
	}, nil
}

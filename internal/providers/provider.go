package providers

import (
	"context"
	"errors"
	"fmt"
)

// SearchQuery describes one round-trip lookup.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // YYYY-MM-DD
	Adults        int
	Currency      string
}

// Offer is a single priced result from a provider.
type Offer struct {
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}

type QuoteProvider interface {
	Name() string
	Search(ctx context.Context, q SearchQuery) ([]Offer, error)
}

// ErrRateLimited is returned when a provider rejects a request with its
// rate-limit response. Not retryable within the same run.
var ErrRateLimited = errors.New("provider rate limited")

// AuthError means credential issuance failed. No provider call can proceed
// without a token, so it aborts the whole run.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

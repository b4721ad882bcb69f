package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/you/go-flight-monitor/internal/providers"
)

type ProviderMock struct {
	name      string
	offers    []providers.Offer
	delay     time.Duration
	errorOut  error
	callCount *int32
}

func (p ProviderMock) Name() string {
	return p.name
}

func (p ProviderMock) Search(ctx context.Context, q providers.SearchQuery) ([]providers.Offer, error) {
	if p.callCount != nil {
		atomic.AddInt32(p.callCount, 1)
	}
	if p.errorOut != nil {
		return nil, p.errorOut
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.offers, nil
}

package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

// RateResolverSvc resolves exchange rates against the cached quote table.
type RateResolverSvc interface {
	// Resolve returns the rate for from→to. ok is false when no
	// applicable quote exists; callers render that as "N/A", never as a
	// failure. err reports store access problems only.
	Resolve(ctx context.Context, from, to string) (rate decimal.Decimal, ok bool, err error)

	// Detail returns the resolved rate together with its reverse and
	// the cache refresh time, for display.
	Detail(ctx context.Context, from, to string) (*dto.RateDetail, bool, error)

	// Snapshot returns the current cached quote table.
	Snapshot(ctx context.Context) (domain.RateSnapshot, error)
}

// RateProvider is one pluggable external quote source. An empty result
// map means "no data", not an error.
type RateProvider interface {
	// Name identifies the provider in logs and source filters.
	Name() string

	// FetchRates retrieves this provider's quotes keyed by pair key.
	FetchRates(ctx context.Context) (map[string]domain.RateQuote, error)
}

// RateUpdaterSvc refreshes the cached quote table from the providers.
type RateUpdaterSvc interface {
	// UpdateOnce fetches from every provider (or just the named source),
	// merges into the cache and returns the number of refreshed pairs.
	UpdateOnce(ctx context.Context, source string) (int, error)

	// Run refreshes on a fixed interval until ctx is cancelled.
	Run(ctx context.Context, interval time.Duration)
}

package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

var one = decimal.New(1, 0)

// RateService resolves exchange rates against the cached quote table.
// Resolution is a pure read over the current snapshot: direct lookup,
// then inverse, then the configured fallback table (direct, then
// inverse). A stored rate of exactly zero is never inverted.
type RateService struct {
	rateRepo portsrepo.RateReader
	fallback map[string]decimal.Decimal
}

// NewRateService creates a RateService. fallback is the default-quote
// table consulted when the live cache has no entry.
func NewRateService(rateRepo portsrepo.RateReader, fallback map[string]decimal.Decimal) *RateService {
	return &RateService{rateRepo: rateRepo, fallback: fallback}
}

// Resolve returns the rate for from→to. ok reports whether any
// applicable quote was found; err reports store access failures only.
func (s *RateService) Resolve(ctx context.Context, from, to string) (decimal.Decimal, bool, error) {
	from = domain.NormalizeCode(from)
	to = domain.NormalizeCode(to)

	// Identity resolves without touching the cache.
	if from == to {
		return one, true, nil
	}

	snapshot, err := s.rateRepo.LoadCurrent(ctx)
	if err != nil {
		return decimal.Zero, false, err
	}

	rate, ok := s.resolveFrom(snapshot.Pairs, from, to)
	return rate, ok, nil
}

// Detail returns the resolved rate with its reverse and the cache
// refresh time. ok is false when the rate is unavailable.
func (s *RateService) Detail(ctx context.Context, from, to string) (*dto.RateDetail, bool, error) {
	from = domain.NormalizeCode(from)
	to = domain.NormalizeCode(to)

	snapshot, err := s.rateRepo.LoadCurrent(ctx)
	if err != nil {
		return nil, false, err
	}

	var (
		rate decimal.Decimal
		ok   bool
	)
	if from == to {
		rate, ok = one, true
	} else {
		rate, ok = s.resolveFrom(snapshot.Pairs, from, to)
	}
	if !ok {
		return nil, false, nil
	}

	detail := &dto.RateDetail{
		From:        from,
		To:          to,
		Rate:        rate,
		LastRefresh: snapshot.LastRefresh,
	}
	if !rate.IsZero() {
		reverse := one.Div(rate)
		detail.Reverse = &reverse
	}
	return detail, true, nil
}

// Snapshot returns the current cached quote table.
func (s *RateService) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	return s.rateRepo.LoadCurrent(ctx)
}

func (s *RateService) resolveFrom(pairs map[string]domain.RateQuote, from, to string) (decimal.Decimal, bool) {
	direct := domain.PairKey(from, to)
	inverse := domain.PairKey(to, from)

	if quote, ok := pairs[direct]; ok {
		return quote.Rate, true
	}
	if quote, ok := pairs[inverse]; ok && !quote.Rate.IsZero() {
		return one.Div(quote.Rate), true
	}
	if rate, ok := s.fallback[direct]; ok {
		return rate, true
	}
	if rate, ok := s.fallback[inverse]; ok && !rate.IsZero() {
		return one.Div(rate), true
	}
	return decimal.Zero, false
}

var _ portssvc.RateResolverSvc = (*RateService)(nil)

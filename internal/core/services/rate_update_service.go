package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade-hub/internal/platform/logging"
)

// demoSource labels quotes synthesized from the fallback table when
// every provider fails.
const demoSource = "Demo"

// RateUpdateService refreshes the cached quote table from the
// registered providers. A refresh merges fetched pairs into the
// existing snapshot (absent keys are retained) and stamps the refresh
// time. One unreachable provider never discards quotes obtained from
// the others; when all providers fail the fallback table is written as
// a demo quote set so the cache is never left empty.
type RateUpdateService struct {
	rateRepo  portsrepo.RateRepository
	providers []portssvc.RateProvider
	fallback  map[string]decimal.Decimal
}

// NewRateUpdateService creates a new RateUpdateService.
func NewRateUpdateService(
	rateRepo portsrepo.RateRepository,
	providers []portssvc.RateProvider,
	fallback map[string]decimal.Decimal,
) *RateUpdateService {
	return &RateUpdateService{
		rateRepo:  rateRepo,
		providers: providers,
		fallback:  fallback,
	}
}

// UpdateOnce fetches from every provider (or just the named source) and
// merges the result into the cache. It returns the number of refreshed
// pairs.
func (s *RateUpdateService) UpdateOnce(ctx context.Context, source string) (int, error) {
	logger := logging.FromCtx(ctx)

	fetched := make(map[string]domain.RateQuote)
	attempted := 0
	for _, provider := range s.providers {
		if source != "" && !strings.EqualFold(provider.Name(), source) {
			continue
		}
		attempted++

		quotes, err := provider.FetchRates(ctx)
		if err != nil {
			// Partial failure: keep whatever the other providers returned.
			logger.Warn("provider fetch failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(quotes) == 0 {
			logger.Warn("provider returned no data", slog.String("provider", provider.Name()))
			continue
		}
		for pair, quote := range quotes {
			fetched[pair] = quote
		}
		logger.Info("provider quotes fetched",
			slog.String("provider", provider.Name()),
			slog.Int("pairs", len(quotes)),
		)
	}
	if attempted == 0 && source != "" {
		return 0, fmt.Errorf("%w: unknown rate source '%s'", apperrors.ErrValidation, source)
	}

	if len(fetched) == 0 {
		logger.Warn("no provider data available, falling back to demo quotes")
		fetched = s.demoQuotes()
	}

	snapshot, err := s.rateRepo.LoadCurrent(ctx)
	if err != nil {
		return 0, err
	}
	for pair, quote := range fetched {
		snapshot.Pairs[pair] = quote
	}
	now := time.Now()
	snapshot.LastRefresh = &now

	if err := s.rateRepo.SaveCurrent(ctx, snapshot); err != nil {
		return 0, err
	}
	if err := s.rateRepo.AppendHistory(ctx, historyRecords(fetched)); err != nil {
		return 0, err
	}

	logger.Info("rate cache refreshed",
		slog.Int("refreshed_pairs", len(fetched)),
		slog.Int("total_pairs", len(snapshot.Pairs)),
	)
	return len(fetched), nil
}

// Run refreshes immediately and then on every tick until ctx is
// cancelled. Cancellation takes effect within one tick and never
// interrupts a store write mid-file.
func (s *RateUpdateService) Run(ctx context.Context, interval time.Duration) {
	logger := logging.FromCtx(ctx)
	logger.Info("background rate refresh started", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.UpdateOnce(ctx, ""); err != nil {
			logger.Error("scheduled rate refresh failed", slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			logger.Info("background rate refresh stopped")
			return
		case <-ticker.C:
		}
	}
}

// demoQuotes synthesizes a quote set from the fallback table.
func (s *RateUpdateService) demoQuotes() map[string]domain.RateQuote {
	now := time.Now()
	quotes := make(map[string]domain.RateQuote, len(s.fallback))
	for pair, rate := range s.fallback {
		quotes[pair] = domain.RateQuote{
			Rate:      rate,
			Source:    demoSource,
			Timestamp: now,
		}
	}
	return quotes
}

// historyRecords converts a fetched batch into append-only history
// entries with ids like "BTC_USD_2025-10-10T12:00:00Z".
func historyRecords(fetched map[string]domain.RateQuote) []domain.HistoricalRate {
	records := make([]domain.HistoricalRate, 0, len(fetched))
	for pair, quote := range fetched {
		from, to, err := domain.SplitPairKey(pair)
		if err != nil {
			continue
		}
		records = append(records, domain.HistoricalRate{
			ID:           fmt.Sprintf("%s_%s", pair, quote.Timestamp.UTC().Format("2006-01-02T15:04:05Z")),
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         quote.Rate,
			Source:       quote.Source,
			Timestamp:    quote.Timestamp,
		})
	}
	return records
}

var _ portssvc.RateUpdaterSvc = (*RateUpdateService)(nil)

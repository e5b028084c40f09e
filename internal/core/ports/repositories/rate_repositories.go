package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
)

// RateReader reads the cached quote snapshot.
type RateReader interface {
	// LoadCurrent retrieves the cached quote table. A missing cache
	// yields an empty snapshot, not an error.
	LoadCurrent(ctx context.Context) (domain.RateSnapshot, error)
}

// RateWriter replaces the cached quote snapshot and appends history.
type RateWriter interface {
	// SaveCurrent replaces the cached quote table wholesale.
	SaveCurrent(ctx context.Context, snapshot domain.RateSnapshot) error

	// AppendHistory appends fetched quotes to the historical record.
	AppendHistory(ctx context.Context, records []domain.HistoricalRate) error
}

// RateRepository combines read and write access to the quote cache.
type RateRepository interface {
	RateReader
	RateWriter
}

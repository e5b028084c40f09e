package jsonstore

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
)

// RateRepository persists the quote cache in rates.json and the
// append-only fetch history in exchange_rates.json.
type RateRepository struct {
	store *Store
}

// NewRateRepository creates a RateRepository backed by the given store.
func NewRateRepository(store *Store) *RateRepository {
	return &RateRepository{store: store}
}

// LoadCurrent retrieves the cached quote table. A missing cache yields
// an empty snapshot.
func (r *RateRepository) LoadCurrent(ctx context.Context) (domain.RateSnapshot, error) {
	snapshot := domain.NewRateSnapshot()
	if err := r.store.load(ratesFile, &snapshot); err != nil {
		return domain.RateSnapshot{}, err
	}
	if snapshot.Pairs == nil {
		snapshot.Pairs = make(map[string]domain.RateQuote)
	}
	return snapshot, nil
}

// SaveCurrent replaces the cached quote table wholesale.
func (r *RateRepository) SaveCurrent(ctx context.Context, snapshot domain.RateSnapshot) error {
	return r.store.save(ratesFile, snapshot)
}

// AppendHistory appends fetched quotes to the historical record.
func (r *RateRepository) AppendHistory(ctx context.Context, records []domain.HistoricalRate) error {
	if len(records) == 0 {
		return nil
	}
	var history []domain.HistoricalRate
	if err := r.store.load(historyFile, &history); err != nil {
		return err
	}
	history = append(history, records...)
	return r.store.save(historyFile, history)
}

var _ portsrepo.RateRepository = (*RateRepository)(nil)

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is one fetched exchange rate for a directional pair.
// Quotes are never mutated in place; a refresh replaces the snapshot wholesale.
type RateQuote struct {
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
}

// RateSnapshot is the cached quote table, keyed by pair key "{FROM}_{TO}".
type RateSnapshot struct {
	Pairs       map[string]RateQuote `json:"pairs"`
	LastRefresh *time.Time           `json:"last_refresh"`
}

// NewRateSnapshot returns an empty snapshot ready for merging.
func NewRateSnapshot() RateSnapshot {
	return RateSnapshot{Pairs: make(map[string]RateQuote)}
}

// HistoricalRate is one append-only history record for a fetched quote.
type HistoricalRate struct {
	ID           string          `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	Timestamp    time.Time       `json:"timestamp"`
}

// PairKey builds the canonical "{FROM}_{TO}" key for a directional pair.
func PairKey(from, to string) string {
	return NormalizeCode(from) + "_" + NormalizeCode(to)
}

// SplitPairKey breaks a "{FROM}_{TO}" key back into its currency codes.
func SplitPairKey(key string) (from, to string, err error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed pair key '%s'", key)
	}
	return parts[0], parts[1], nil
}

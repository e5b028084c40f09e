package services

import (
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
)

// CurrencyRegistrySvc is the process-wide catalogue of known currencies.
// Entries are immutable once registered and shared by reference.
type CurrencyRegistrySvc interface {
	// Register inserts or overwrites a currency by code.
	Register(currency domain.Currency)

	// Get retrieves a currency by code, uppercasing the input.
	Get(code string) (domain.Currency, error)

	// All returns a defensive copy of the full catalogue.
	All() map[string]domain.Currency
}

package services

import (
	"sync"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
)

// CurrencyRegistry is the in-memory catalogue of known currencies,
// populated once at startup and read-only thereafter. The lock exists
// only for the benefit of the background refresh goroutine reading the
// catalogue while the REPL registers nothing.
type CurrencyRegistry struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
}

// NewCurrencyRegistry creates an empty registry.
func NewCurrencyRegistry() *CurrencyRegistry {
	return &CurrencyRegistry{currencies: make(map[string]domain.Currency)}
}

// NewDefaultCurrencyRegistry creates a registry seeded with the demo
// currency set.
func NewDefaultCurrencyRegistry() (*CurrencyRegistry, error) {
	registry := NewCurrencyRegistry()

	defaults := []struct {
		build func() (domain.Currency, error)
	}{
		{func() (domain.Currency, error) { return domain.NewFiatCurrency("US Dollar", "USD", "United States") }},
		{func() (domain.Currency, error) { return domain.NewFiatCurrency("Euro", "EUR", "Eurozone") }},
		{func() (domain.Currency, error) { return domain.NewFiatCurrency("Russian Ruble", "RUB", "Russia") }},
		{func() (domain.Currency, error) { return domain.NewCryptoCurrency("Bitcoin", "BTC", "SHA-256", 1.12e12) }},
		{func() (domain.Currency, error) { return domain.NewCryptoCurrency("Ethereum", "ETH", "Ethash", 3.72e11) }},
	}
	for _, d := range defaults {
		currency, err := d.build()
		if err != nil {
			return nil, err
		}
		registry.Register(currency)
	}
	return registry, nil
}

// Register inserts or overwrites a currency by code.
func (r *CurrencyRegistry) Register(currency domain.Currency) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[currency.Code] = currency
}

// Get retrieves a currency by code, uppercasing the input.
func (r *CurrencyRegistry) Get(code string) (domain.Currency, error) {
	normalized := domain.NormalizeCode(code)
	r.mu.RLock()
	defer r.mu.RUnlock()
	currency, ok := r.currencies[normalized]
	if !ok {
		return domain.Currency{}, &apperrors.CurrencyNotFoundError{Code: normalized}
	}
	return currency, nil
}

// All returns a defensive copy of the full catalogue.
func (r *CurrencyRegistry) All() map[string]domain.Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.Currency, len(r.currencies))
	for code, currency := range r.currencies {
		out[code] = currency
	}
	return out
}

var _ portssvc.CurrencyRegistrySvc = (*CurrencyRegistry)(nil)

package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
)

// CurrencyKind discriminates the closed set of currency variants.
type CurrencyKind string

const (
	Fiat   CurrencyKind = "FIAT"
	Crypto CurrencyKind = "CRYPTO"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{2,5}$`)

// Currency is an immutable descriptor of a tradable currency.
// Kind selects which of the variant fields are meaningful:
// IssuingCountry for fiat, Algorithm and MarketCap for crypto.
type Currency struct {
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Kind           CurrencyKind `json:"kind"`
	IssuingCountry string       `json:"issuing_country,omitempty"`
	Algorithm      string       `json:"algorithm,omitempty"`
	MarketCap      float64      `json:"market_cap,omitempty"`
}

// NewFiatCurrency validates and builds a fiat currency descriptor.
func NewFiatCurrency(name, code, issuingCountry string) (Currency, error) {
	code, err := validateCurrency(name, code)
	if err != nil {
		return Currency{}, err
	}
	return Currency{
		Code:           code,
		Name:           name,
		Kind:           Fiat,
		IssuingCountry: issuingCountry,
	}, nil
}

// NewCryptoCurrency validates and builds a crypto currency descriptor.
func NewCryptoCurrency(name, code, algorithm string, marketCap float64) (Currency, error) {
	code, err := validateCurrency(name, code)
	if err != nil {
		return Currency{}, err
	}
	return Currency{
		Code:      code,
		Name:      name,
		Kind:      Crypto,
		Algorithm: algorithm,
		MarketCap: marketCap,
	}, nil
}

func validateCurrency(name, code string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: currency name must not be empty", apperrors.ErrValidation)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: currency code must not be empty", apperrors.ErrValidation)
	}
	if !currencyCodePattern.MatchString(code) {
		return "", fmt.Errorf("%w: malformed currency code '%s'", apperrors.ErrValidation, code)
	}
	return code, nil
}

// NormalizeCode uppercases and trims a user-supplied currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DisplayInfo renders the per-kind one-line description used by the CLI and logs.
func (c Currency) DisplayInfo() string {
	switch c.Kind {
	case Crypto:
		mcap := fmt.Sprintf("%.2f", c.MarketCap)
		if c.MarketCap > 1000 {
			mcap = fmt.Sprintf("%.2e", c.MarketCap)
		}
		return fmt.Sprintf("[CRYPTO] %s — %s (Algo: %s, MCAP: %s)", c.Code, c.Name, c.Algorithm, mcap)
	default:
		return fmt.Sprintf("[FIAT] %s — %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
	}
}

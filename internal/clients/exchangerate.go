package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
)

const exchangeRateSource = "ExchangeRate-API"

// ExchangeRateClient fetches fiat quotes from the ExchangeRate-API v6
// latest-rates endpoint, quoted against USD.
type ExchangeRateClient struct {
	apiClient
	baseURL string
	apiKey  string
	fiats   []string
}

// NewExchangeRateClient creates an ExchangeRate-API provider for the
// given tracked fiat set. An empty API key disables the provider: it
// reports "no data" rather than failing.
func NewExchangeRateClient(baseURL, apiKey string, fiats []string, timeout time.Duration) *ExchangeRateClient {
	return &ExchangeRateClient{
		apiClient: newAPIClient(timeout),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		fiats:     fiats,
	}
}

// Name identifies the provider in logs and source filters.
func (c *ExchangeRateClient) Name() string {
	return "exchangerate"
}

// FetchRates retrieves {CUR}_USD quotes for every tracked fiat plus the
// USD_USD identity pair.
func (c *ExchangeRateClient) FetchRates(ctx context.Context) (map[string]domain.RateQuote, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s/latest/USD", c.baseURL, c.apiKey)

	var payload struct {
		Result          string             `json:"result"`
		ErrorType       string             `json:"error-type"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, apperrors.NewAPIRequestError("exchangerate fetch", err)
	}
	if payload.Result != "success" {
		return nil, apperrors.NewAPIRequestError(
			fmt.Sprintf("exchangerate fetch: %s", payload.ErrorType), nil)
	}

	now := time.Now()
	quotes := make(map[string]domain.RateQuote)
	for _, fiat := range c.fiats {
		value, ok := payload.ConversionRates[domain.NormalizeCode(fiat)]
		if !ok {
			continue
		}
		quotes[domain.PairKey(fiat, "USD")] = domain.RateQuote{
			Rate:      decimal.NewFromFloat(value),
			Source:    exchangeRateSource,
			Timestamp: now,
		}
	}
	quotes[domain.PairKey("USD", "USD")] = domain.RateQuote{
		Rate:      decimal.New(1, 0),
		Source:    exchangeRateSource,
		Timestamp: now,
	}
	return quotes, nil
}

var _ portssvc.RateProvider = (*ExchangeRateClient)(nil)

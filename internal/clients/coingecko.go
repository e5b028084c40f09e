package clients

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
)

const coinGeckoSource = "CoinGecko"

// CoinGeckoClient fetches crypto/USD quotes from the CoinGecko simple
// price endpoint.
type CoinGeckoClient struct {
	apiClient
	baseURL string
	// cryptoIDs maps currency codes to CoinGecko asset ids, e.g. BTC → bitcoin.
	cryptoIDs map[string]string
}

// NewCoinGeckoClient creates a CoinGecko provider for the given asset set.
func NewCoinGeckoClient(baseURL string, cryptoIDs map[string]string, timeout time.Duration) *CoinGeckoClient {
	return &CoinGeckoClient{
		apiClient: newAPIClient(timeout),
		baseURL:   strings.TrimRight(baseURL, "/"),
		cryptoIDs: cryptoIDs,
	}
}

// Name identifies the provider in logs and source filters.
func (c *CoinGeckoClient) Name() string {
	return "coingecko"
}

// FetchRates retrieves {CODE}_USD quotes for every tracked asset.
// Assets missing from the response are skipped.
func (c *CoinGeckoClient) FetchRates(ctx context.Context) (map[string]domain.RateQuote, error) {
	if len(c.cryptoIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(c.cryptoIDs))
	for _, id := range c.cryptoIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var payload map[string]map[string]float64
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, apperrors.NewAPIRequestError("coingecko fetch", err)
	}

	now := time.Now()
	quotes := make(map[string]domain.RateQuote)
	for code, id := range c.cryptoIDs {
		usd, ok := payload[id]["usd"]
		if !ok {
			continue
		}
		quotes[domain.PairKey(code, "USD")] = domain.RateQuote{
			Rate:      decimal.NewFromFloat(usd),
			Source:    coinGeckoSource,
			Timestamp: now,
		}
	}
	return quotes, nil
}

var _ portssvc.RateProvider = (*CoinGeckoClient)(nil)

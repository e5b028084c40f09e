package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
)

func TestPairKey(t *testing.T) {
	assert.Equal(t, "BTC_USD", domain.PairKey("btc", " usd "))
	assert.Equal(t, "EUR_USD", domain.PairKey("EUR", "USD"))
}

func TestSplitPairKey(t *testing.T) {
	from, to, err := domain.SplitPairKey("BTC_USD")
	require.NoError(t, err)
	assert.Equal(t, "BTC", from)
	assert.Equal(t, "USD", to)

	for _, malformed := range []string{"BTCUSD", "_USD", "BTC_", ""} {
		_, _, err := domain.SplitPairKey(malformed)
		assert.Error(t, err, "key %q should not parse", malformed)
	}
}

func TestNewRateSnapshot(t *testing.T) {
	snapshot := domain.NewRateSnapshot()
	require.NotNil(t, snapshot.Pairs)
	assert.Empty(t, snapshot.Pairs)
	assert.Nil(t, snapshot.LastRefresh)
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DataDir             string
	DefaultBaseCurrency string
	LogLevel            string

	// Rate refresh
	RefreshInterval    time.Duration // 0 disables the background loop
	RequestTimeout     time.Duration
	CoinGeckoURL       string
	ExchangeRateAPIURL string
	ExchangeRateAPIKey string `mapstructure:"EXCHANGE_RATE_API_KEY"`
	FiatCurrencies     []string
	CryptoIDs          map[string]string

	// FallbackRates is the single authoritative default-quote table,
	// used both as the resolver's last-resort lookup and as the demo
	// quote set when every provider fails.
	FallbackRates map[string]decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DEFAULT_BASE_CURRENCY", "USD")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REFRESH_INTERVAL", "5m")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("COINGECKO_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("EXCHANGERATE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("FIAT_CURRENCIES", []string{"EUR", "GBP", "RUB", "CNY", "JPY"})
	viper.SetDefault("CRYPTO_IDS", map[string]string{
		"BTC": "bitcoin",
		"ETH": "ethereum",
		"SOL": "solana",
	})
	viper.SetDefault("FALLBACK_RATES", map[string]string{
		"BTC_USD": "59337.21",
		"EUR_USD": "1.0786",
		"RUB_USD": "0.01016",
		"ETH_USD": "3720.00",
		"USD_USD": "1.0",
	})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DataDir = viper.GetString("DATA_DIR")
	cfg.DefaultBaseCurrency = viper.GetString("DEFAULT_BASE_CURRENCY")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	refreshStr := viper.GetString("REFRESH_INTERVAL")
	refreshInterval, err := time.ParseDuration(refreshStr)
	if err != nil {
		refreshInterval = 5 * time.Minute
		log.Printf("Warning: Invalid value for REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshStr, refreshInterval)
	}
	cfg.RefreshInterval = refreshInterval

	timeoutStr := viper.GetString("REQUEST_TIMEOUT")
	requestTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		requestTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, requestTimeout)
	}
	cfg.RequestTimeout = requestTimeout

	cfg.CoinGeckoURL = viper.GetString("COINGECKO_URL")
	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGERATE_API_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY environment variable not set. Fiat rate updates will be skipped.")
	}

	cfg.FiatCurrencies = viper.GetStringSlice("FIAT_CURRENCIES")

	// viper lowercases map keys; currency codes are uppercase by contract.
	cfg.CryptoIDs = make(map[string]string)
	for code, id := range viper.GetStringMapString("CRYPTO_IDS") {
		cfg.CryptoIDs[strings.ToUpper(code)] = id
	}

	cfg.FallbackRates = make(map[string]decimal.Decimal)
	for pair, raw := range viper.GetStringMapString("FALLBACK_RATES") {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid fallback rate for %s: %w", pair, err)
		}
		cfg.FallbackRates[strings.ToUpper(pair)] = rate
	}

	return cfg, nil
}

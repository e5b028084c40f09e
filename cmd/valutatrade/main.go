package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/valutatrade/valutatrade-hub/internal/cli"
	"github.com/valutatrade/valutatrade-hub/internal/clients"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade-hub/internal/core/services"
	"github.com/valutatrade/valutatrade-hub/internal/platform/logging"
	"github.com/valutatrade/valutatrade-hub/internal/repositories/jsonstore"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "valutatrade: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := os.OpenFile("actions.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(logFile, parseLogLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	store, err := jsonstore.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize data store: %w", err)
	}
	repos := &portsrepo.RepositoryProvider{
		UserRepo:      jsonstore.NewUserRepository(store),
		PortfolioRepo: jsonstore.NewPortfolioRepository(store),
		RateRepo:      jsonstore.NewRateRepository(store),
	}

	providers := []portssvc.RateProvider{
		clients.NewCoinGeckoClient(cfg.CoinGeckoURL, cfg.CryptoIDs, cfg.RequestTimeout),
		clients.NewExchangeRateClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, cfg.FiatCurrencies, cfg.RequestTimeout),
	}

	container, err := services.NewContainer(repos, providers, cfg.FallbackRates)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RefreshInterval > 0 {
		go container.Updater.Run(ctx, cfg.RefreshInterval)
	}

	logger.Info("application started",
		slog.String("data_dir", cfg.DataDir),
		slog.Duration("refresh_interval", cfg.RefreshInterval),
	)

	repl := cli.New(container, logger, os.Stdout)
	return repl.Run(ctx)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

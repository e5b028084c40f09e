package services

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

// PortfolioTraderSvc settles buy and sell orders against a user's wallets.
type PortfolioTraderSvc interface {
	// Buy deposits the bought amount into the currency's wallet,
	// creating the wallet (and the portfolio) on first use.
	Buy(ctx context.Context, userID int, req dto.TradeRequest) (*dto.TradeResult, error)

	// Sell withdraws the sold amount from an existing wallet.
	Sell(ctx context.Context, userID int, req dto.TradeRequest) (*dto.TradeResult, error)
}

// PortfolioReaderSvc renders portfolio state.
type PortfolioReaderSvc interface {
	// View values every wallet in the base currency. Wallets without a
	// resolvable rate appear with no rate and contribute zero.
	View(ctx context.Context, userID int, baseCurrency string) (*dto.PortfolioView, error)
}

// PortfolioSvcFacade combines all portfolio-related service interfaces.
type PortfolioSvcFacade interface {
	PortfolioTraderSvc
	PortfolioReaderSvc
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
	"github.com/valutatrade/valutatrade-hub/internal/platform/logging"
)

// usdCode is the quote currency for trade cost/revenue estimates.
const usdCode = "USD"

// PortfolioService settles buy and sell orders: it validates inputs,
// resolves the currency and its USD rate, mutates the wallet and
// persists the whole portfolio collection back.
//
// Validation order on a trade: amount positivity, currency code format,
// currency existence, then wallet state. Currency existence is checked
// before funds on a sell.
type PortfolioService struct {
	portfolioRepo portsrepo.PortfolioRepository
	registry      portssvc.CurrencyRegistrySvc
	rates         portssvc.RateResolverSvc
	validate      *validator.Validate
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	portfolioRepo portsrepo.PortfolioRepository,
	registry portssvc.CurrencyRegistrySvc,
	rates portssvc.RateResolverSvc,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		registry:      registry,
		rates:         rates,
		validate:      validator.New(),
	}
}

// Buy deposits the bought amount into the user's wallet for the
// currency, lazily creating the portfolio and the wallet.
func (s *PortfolioService) Buy(ctx context.Context, userID int, req dto.TradeRequest) (*dto.TradeResult, error) {
	logger := logging.FromCtx(ctx)
	logger.Debug("trade requested",
		slog.String("action", string(dto.ActionBuy)),
		slog.Int("user_id", userID),
		slog.String("currency", req.CurrencyCode),
		slog.String("amount", req.Amount.String()),
	)

	currency, err := s.validateTrade(req)
	if err != nil {
		logTradeFailure(logger, dto.ActionBuy, userID, req, err)
		return nil, err
	}

	portfolio, portfolios, err := s.loadOrCreatePortfolio(ctx, userID)
	if err != nil {
		logTradeFailure(logger, dto.ActionBuy, userID, req, err)
		return nil, err
	}

	wallet := portfolio.EnsureWallet(currency.Code)
	oldBalance := wallet.Balance
	if err := wallet.Deposit(req.Amount); err != nil {
		logTradeFailure(logger, dto.ActionBuy, userID, req, err)
		return nil, err
	}

	if err := s.portfolioRepo.SaveAll(ctx, portfolios); err != nil {
		logTradeFailure(logger, dto.ActionBuy, userID, req, err)
		return nil, err
	}

	result, err := s.buildResult(ctx, dto.ActionBuy, currency, req.Amount, oldBalance, wallet.Balance)
	if err != nil {
		logTradeFailure(logger, dto.ActionBuy, userID, req, err)
		return nil, err
	}

	logTradeSettled(logger, userID, result)
	return result, nil
}

// Sell withdraws the sold amount from an existing wallet. The wallet
// must exist and hold enough balance; a failed sell never mutates or
// persists anything.
func (s *PortfolioService) Sell(ctx context.Context, userID int, req dto.TradeRequest) (*dto.TradeResult, error) {
	logger := logging.FromCtx(ctx)
	logger.Debug("trade requested",
		slog.String("action", string(dto.ActionSell)),
		slog.Int("user_id", userID),
		slog.String("currency", req.CurrencyCode),
		slog.String("amount", req.Amount.String()),
	)

	currency, err := s.validateTrade(req)
	if err != nil {
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	portfolio, portfolios, err := s.loadOrCreatePortfolio(ctx, userID)
	if err != nil {
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	wallet := portfolio.Wallet(currency.Code)
	if wallet == nil {
		err := &apperrors.NoWalletError{CurrencyCode: currency.Code}
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	oldBalance := wallet.Balance
	if err := wallet.Withdraw(req.Amount); err != nil {
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	if err := s.portfolioRepo.SaveAll(ctx, portfolios); err != nil {
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	result, err := s.buildResult(ctx, dto.ActionSell, currency, req.Amount, oldBalance, wallet.Balance)
	if err != nil {
		logTradeFailure(logger, dto.ActionSell, userID, req, err)
		return nil, err
	}

	logTradeSettled(logger, userID, result)
	return result, nil
}

// View values every wallet in the base currency. Wallets without a
// resolvable rate appear without a rate and contribute zero to Total.
func (s *PortfolioService) View(ctx context.Context, userID int, baseCurrency string) (*dto.PortfolioView, error) {
	base := domain.NormalizeCode(baseCurrency)
	if base == "" {
		base = usdCode
	}

	portfolios, err := s.portfolioRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	view := &dto.PortfolioView{
		UserID:       userID,
		BaseCurrency: base,
		Total:        decimal.Zero,
	}

	var portfolio *domain.Portfolio
	for _, p := range portfolios {
		if p.UserID == userID {
			portfolio = p
			break
		}
	}
	if portfolio == nil {
		return view, nil
	}

	codes := make([]string, 0, len(portfolio.Wallets))
	for code := range portfolio.Wallets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		wallet := portfolio.Wallets[code]
		row := dto.PortfolioRow{
			CurrencyCode: code,
			Balance:      wallet.Balance,
		}
		rate, ok, err := s.rates.Resolve(ctx, code, base)
		if err != nil {
			return nil, err
		}
		if ok {
			value := wallet.Balance.Mul(rate)
			row.Rate = &rate
			row.Value = &value
			view.Total = view.Total.Add(value)
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// validateTrade checks amount positivity and code format, then resolves
// the currency in the registry.
func (s *PortfolioService) validateTrade(req dto.TradeRequest) (domain.Currency, error) {
	if !req.Amount.IsPositive() {
		return domain.Currency{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Currency{}, fmt.Errorf("%w: malformed currency code '%s'", apperrors.ErrValidation, req.CurrencyCode)
	}
	return s.registry.Get(req.CurrencyCode)
}

// loadOrCreatePortfolio loads the user's portfolio from the whole
// collection, appending a fresh empty one when absent. The returned
// slice is what must be persisted after mutation.
func (s *PortfolioService) loadOrCreatePortfolio(ctx context.Context, userID int) (*domain.Portfolio, []*domain.Portfolio, error) {
	portfolios, err := s.portfolioRepo.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range portfolios {
		if p.UserID == userID {
			return p, portfolios, nil
		}
	}
	portfolio := domain.NewPortfolio(userID)
	portfolios = append(portfolios, portfolio)
	return portfolio, portfolios, nil
}

// buildResult resolves the USD rate and assembles the trade outcome.
// An unavailable rate leaves Rate and EstimatedUSD nil.
func (s *PortfolioService) buildResult(
	ctx context.Context,
	action dto.TradeAction,
	currency domain.Currency,
	amount, oldBalance, newBalance decimal.Decimal,
) (*dto.TradeResult, error) {
	result := &dto.TradeResult{
		Action:       action,
		CurrencyCode: currency.Code,
		CurrencyName: currency.Name,
		Amount:       amount,
		OldBalance:   oldBalance,
		NewBalance:   newBalance,
	}

	rate, ok, err := s.rates.Resolve(ctx, currency.Code, usdCode)
	if err != nil {
		return nil, err
	}
	if ok {
		estimated := amount.Mul(rate)
		result.Rate = &rate
		result.EstimatedUSD = &estimated
	}
	return result, nil
}

// logTradeSettled emits the structured end-of-operation event for a
// settled trade, with the outcome as explicit fields.
func logTradeSettled(logger *slog.Logger, userID int, result *dto.TradeResult) {
	attrs := []any{
		slog.String("action", string(result.Action)),
		slog.Int("user_id", userID),
		slog.String("currency", result.CurrencyCode),
		slog.String("amount", result.Amount.StringFixed(4)),
		slog.String("result", "OK"),
	}
	if result.Rate != nil {
		attrs = append(attrs, slog.String("rate", result.Rate.StringFixed(2)))
	}
	if result.EstimatedUSD != nil {
		attrs = append(attrs, slog.String("estimated_usd", result.EstimatedUSD.StringFixed(2)))
	}
	logger.Info("trade settled", attrs...)
}

// logTradeFailure emits the structured end-of-operation event for a
// rejected or failed trade.
func logTradeFailure(logger *slog.Logger, action dto.TradeAction, userID int, req dto.TradeRequest, err error) {
	logger.Error("trade failed",
		slog.String("action", string(action)),
		slog.Int("user_id", userID),
		slog.String("currency", req.CurrencyCode),
		slog.String("amount", req.Amount.String()),
		slog.String("result", "ERROR"),
		slog.String("error", err.Error()),
	)
}

var _ portssvc.PortfolioSvcFacade = (*PortfolioService)(nil)

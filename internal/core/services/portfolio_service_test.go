package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/core/services"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

// --- Mock PortfolioRepository ---
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) LoadAll(ctx context.Context) ([]*domain.Portfolio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) SaveAll(ctx context.Context, portfolios []*domain.Portfolio) error {
	args := m.Called(ctx, portfolios)
	return args.Error(0)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) Resolve(ctx context.Context, from, to string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRateResolver) Detail(ctx context.Context, from, to string) (*dto.RateDetail, bool, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*dto.RateDetail), args.Bool(1), args.Error(2)
}

func (m *MockRateResolver) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

// --- Test Suite ---
type PortfolioServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockPortfolioRepository
	mockRates *MockRateResolver
	service   *services.PortfolioService
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPortfolioRepository)
	suite.mockRates = new(MockRateResolver)

	registry, err := services.NewDefaultCurrencyRegistry()
	suite.Require().NoError(err)

	suite.service = services.NewPortfolioService(suite.mockRepo, registry, suite.mockRates)
}

func (suite *PortfolioServiceTestSuite) TestBuy_CreatesWalletAndPortfolio() {
	ctx := context.Background()
	btcRate := decimal.NewFromFloat(59337.21)

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{}, nil).Once()
	suite.mockRepo.On("SaveAll", ctx, mock.MatchedBy(func(portfolios []*domain.Portfolio) bool {
		if len(portfolios) != 1 || portfolios[0].UserID != 7 {
			return false
		}
		wallet := portfolios[0].Wallet("BTC")
		return wallet != nil && wallet.Balance.Equal(decimal.NewFromFloat(0.5))
	})).Return(nil).Once()
	suite.mockRates.On("Resolve", ctx, "BTC", "USD").Return(btcRate, true, nil).Once()

	result, err := suite.service.Buy(ctx, 7, dto.TradeRequest{
		CurrencyCode: "BTC",
		Amount:       decimal.NewFromFloat(0.5),
	})

	suite.Require().NoError(err)
	suite.Equal(dto.ActionBuy, result.Action)
	suite.Equal("BTC", result.CurrencyCode)
	suite.Equal("Bitcoin", result.CurrencyName)
	suite.True(result.OldBalance.IsZero())
	suite.True(result.NewBalance.Equal(decimal.NewFromFloat(0.5)))
	suite.Require().NotNil(result.EstimatedUSD)
	suite.True(result.EstimatedUSD.Equal(decimal.NewFromFloat(29668.605)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestBuy_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Buy(ctx, 7, dto.TradeRequest{
		CurrencyCode: "USD",
		Amount:       decimal.Zero,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAll", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestBuy_UnknownCurrency() {
	ctx := context.Background()

	_, err := suite.service.Buy(ctx, 7, dto.TradeRequest{
		CurrencyCode: "XRP",
		Amount:       decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	var notFound *apperrors.CurrencyNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("XRP", notFound.Code)
	suite.mockRepo.AssertNotCalled(suite.T(), "LoadAll", mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestBuy_UnavailableRateStillSettles() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()
	suite.mockRepo.On("SaveAll", ctx, mock.Anything).Return(nil).Once()
	suite.mockRates.On("Resolve", ctx, "ETH", "USD").Return(decimal.Zero, false, nil).Once()

	result, err := suite.service.Buy(ctx, 7, dto.TradeRequest{
		CurrencyCode: "ETH",
		Amount:       decimal.NewFromInt(2),
	})

	suite.Require().NoError(err)
	suite.Nil(result.Rate)
	suite.Nil(result.EstimatedUSD)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(2)))
}

func (suite *PortfolioServiceTestSuite) TestSell_Success() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)
	suite.Require().NoError(existing.EnsureWallet("BTC").Deposit(decimal.NewFromInt(1)))

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()
	suite.mockRepo.On("SaveAll", ctx, mock.Anything).Return(nil).Once()
	suite.mockRates.On("Resolve", ctx, "BTC", "USD").Return(decimal.NewFromFloat(59337.21), true, nil).Once()

	result, err := suite.service.Sell(ctx, 7, dto.TradeRequest{
		CurrencyCode: "btc",
		Amount:       decimal.NewFromFloat(0.5),
	})

	suite.Require().NoError(err)
	suite.Equal(dto.ActionSell, result.Action)
	suite.True(result.OldBalance.Equal(decimal.NewFromInt(1)))
	suite.True(result.NewBalance.Equal(decimal.NewFromFloat(0.5)))
}

func (suite *PortfolioServiceTestSuite) TestSell_InsufficientFunds() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)
	suite.Require().NoError(existing.EnsureWallet("BTC").Deposit(decimal.NewFromFloat(0.2)))

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()

	_, err := suite.service.Sell(ctx, 7, dto.TradeRequest{
		CurrencyCode: "BTC",
		Amount:       decimal.NewFromFloat(0.5),
	})

	suite.Require().Error(err)
	var insufficient *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal("BTC", insufficient.CurrencyCode)
	suite.True(insufficient.Available.Equal(decimal.NewFromFloat(0.2)))
	suite.True(insufficient.Required.Equal(decimal.NewFromFloat(0.5)))

	// nothing persisted, balance untouched
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAll", mock.Anything, mock.Anything)
	suite.True(existing.Wallet("BTC").Balance.Equal(decimal.NewFromFloat(0.2)))
}

func (suite *PortfolioServiceTestSuite) TestSell_NoWallet() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()

	_, err := suite.service.Sell(ctx, 7, dto.TradeRequest{
		CurrencyCode: "ETH",
		Amount:       decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	var noWallet *apperrors.NoWalletError
	suite.Require().ErrorAs(err, &noWallet)
	suite.Equal("ETH", noWallet.CurrencyCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAll", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestSell_UnknownCurrencyBeforeFunds() {
	ctx := context.Background()

	// currency existence is checked before any wallet state
	_, err := suite.service.Sell(ctx, 7, dto.TradeRequest{
		CurrencyCode: "DOGE",
		Amount:       decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	var notFound *apperrors.CurrencyNotFoundError
	suite.ErrorAs(err, &notFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "LoadAll", mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestView_ValuesAndTotal() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)
	suite.Require().NoError(existing.EnsureWallet("BTC").Deposit(decimal.NewFromFloat(0.5)))
	suite.Require().NoError(existing.EnsureWallet("USD").Deposit(decimal.NewFromInt(200)))

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()
	suite.mockRates.On("Resolve", ctx, "BTC", "USD").Return(decimal.NewFromFloat(59337.21), true, nil).Once()
	suite.mockRates.On("Resolve", ctx, "USD", "USD").Return(decimal.NewFromInt(1), true, nil).Once()

	view, err := suite.service.View(ctx, 7, "")

	suite.Require().NoError(err)
	suite.Equal("USD", view.BaseCurrency)
	suite.Require().Len(view.Rows, 2)
	// rows come out sorted by currency code
	suite.Equal("BTC", view.Rows[0].CurrencyCode)
	suite.Equal("USD", view.Rows[1].CurrencyCode)
	suite.True(view.Total.Equal(decimal.NewFromFloat(29868.605)))
}

func (suite *PortfolioServiceTestSuite) TestView_UnavailableRateContributesZero() {
	ctx := context.Background()
	existing := domain.NewPortfolio(7)
	suite.Require().NoError(existing.EnsureWallet("ETH").Deposit(decimal.NewFromInt(3)))

	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{existing}, nil).Once()
	suite.mockRates.On("Resolve", ctx, "ETH", "EUR").Return(decimal.Zero, false, nil).Once()

	view, err := suite.service.View(ctx, 7, "eur")

	suite.Require().NoError(err)
	suite.Equal("EUR", view.BaseCurrency)
	suite.Require().Len(view.Rows, 1)
	suite.Nil(view.Rows[0].Rate)
	suite.Nil(view.Rows[0].Value)
	suite.True(view.Total.IsZero())
}

func (suite *PortfolioServiceTestSuite) TestView_MissingPortfolioIsEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("LoadAll", ctx).Return([]*domain.Portfolio{}, nil).Once()

	view, err := suite.service.View(ctx, 42, "USD")

	suite.Require().NoError(err)
	suite.Empty(view.Rows)
	suite.True(view.Total.IsZero())
	// a read never persists a fresh portfolio
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAll", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestPortfolioService(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}

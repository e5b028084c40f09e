package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/core/services"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) LoadCurrent(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockRateRepository) SaveCurrent(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockRateRepository) AppendHistory(ctx context.Context, records []domain.HistoricalRate) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRateRepository
	service  *services.RateService
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.service = services.NewRateService(suite.mockRepo, map[string]decimal.Decimal{
		"RUB_USD": decimal.NewFromFloat(0.01016),
	})
}

func (suite *RateServiceTestSuite) snapshotWith(pairs map[string]float64) domain.RateSnapshot {
	snapshot := domain.NewRateSnapshot()
	now := time.Now().UTC()
	for key, rate := range pairs {
		snapshot.Pairs[key] = domain.RateQuote{
			Rate:      decimal.NewFromFloat(rate),
			Source:    "CoinGecko",
			Timestamp: now,
		}
	}
	snapshot.LastRefresh = &now
	return snapshot
}

func (suite *RateServiceTestSuite) TestResolve_Identity() {
	ctx := context.Background()

	// no snapshot load needed for identity pairs
	rate, ok, err := suite.service.Resolve(ctx, "usd", "USD")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertNotCalled(suite.T(), "LoadCurrent", ctx)
}

func (suite *RateServiceTestSuite) TestResolve_Direct() {
	ctx := context.Background()
	snapshot := suite.snapshotWith(map[string]float64{"BTC_USD": 59337.21})
	suite.mockRepo.On("LoadCurrent", ctx).Return(snapshot, nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "BTC", "USD")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromFloat(59337.21)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolve_Inverse() {
	ctx := context.Background()
	direct := decimal.NewFromFloat(1.0786)
	snapshot := suite.snapshotWith(map[string]float64{"EUR_USD": 1.0786})
	suite.mockRepo.On("LoadCurrent", ctx).Return(snapshot, nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromInt(1).Div(direct)))
}

func (suite *RateServiceTestSuite) TestResolve_ZeroDirectSkipsInversion() {
	ctx := context.Background()
	snapshot := suite.snapshotWith(map[string]float64{"XXX_USD": 0})
	suite.mockRepo.On("LoadCurrent", ctx).Return(snapshot, nil).Once()

	// USD -> XXX would need 1/0; it must fall through, not panic
	_, ok, err := suite.service.Resolve(ctx, "USD", "XXX")

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *RateServiceTestSuite) TestResolve_FallbackDirect() {
	ctx := context.Background()
	suite.mockRepo.On("LoadCurrent", ctx).Return(domain.NewRateSnapshot(), nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "RUB", "USD")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromFloat(0.01016)))
}

func (suite *RateServiceTestSuite) TestResolve_FallbackInverse() {
	ctx := context.Background()
	suite.mockRepo.On("LoadCurrent", ctx).Return(domain.NewRateSnapshot(), nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "USD", "RUB")

	suite.Require().NoError(err)
	suite.True(ok)
	expected := decimal.NewFromInt(1).Div(decimal.NewFromFloat(0.01016))
	suite.True(rate.Equal(expected))
}

func (suite *RateServiceTestSuite) TestResolve_CachePreferredOverFallback() {
	ctx := context.Background()
	snapshot := suite.snapshotWith(map[string]float64{"RUB_USD": 0.0125})
	suite.mockRepo.On("LoadCurrent", ctx).Return(snapshot, nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "RUB", "USD")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromFloat(0.0125)))
}

func (suite *RateServiceTestSuite) TestResolve_Unavailable() {
	ctx := context.Background()
	suite.mockRepo.On("LoadCurrent", ctx).Return(domain.NewRateSnapshot(), nil).Once()

	rate, ok, err := suite.service.Resolve(ctx, "XRP", "USD")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.True(rate.IsZero())
}

func (suite *RateServiceTestSuite) TestDetail_WithReverse() {
	ctx := context.Background()
	snapshot := suite.snapshotWith(map[string]float64{"EUR_USD": 1.0786})
	suite.mockRepo.On("LoadCurrent", ctx).Return(snapshot, nil).Once()

	detail, ok, err := suite.service.Detail(ctx, "eur", "usd")

	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal("EUR", detail.From)
	suite.Equal("USD", detail.To)
	suite.True(detail.Rate.Equal(decimal.NewFromFloat(1.0786)))
	suite.Require().NotNil(detail.Reverse)
	suite.True(detail.Reverse.Equal(decimal.NewFromInt(1).Div(decimal.NewFromFloat(1.0786))))
	suite.NotNil(detail.LastRefresh)
}

func (suite *RateServiceTestSuite) TestDetail_Unavailable() {
	ctx := context.Background()
	suite.mockRepo.On("LoadCurrent", ctx).Return(domain.NewRateSnapshot(), nil).Once()

	detail, ok, err := suite.service.Detail(ctx, "XRP", "EUR")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.Nil(detail)
}

func (suite *RateServiceTestSuite) TestResolve_LoadError() {
	ctx := context.Background()
	suite.mockRepo.On("LoadCurrent", ctx).Return(domain.RateSnapshot{}, assert.AnError).Once()

	_, _, err := suite.service.Resolve(ctx, "BTC", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Suite ---
func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}

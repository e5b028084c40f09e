package dto

import "github.com/shopspring/decimal"

// TradeAction labels the direction of a settled trade.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// TradeRequest carries the inputs for a buy or sell order.
// Amount positivity is a service-level check; validator tags cover the
// string fields only.
type TradeRequest struct {
	CurrencyCode string          `json:"currency_code" validate:"required,alpha,min=2,max=5"`
	Amount       decimal.Decimal `json:"amount"`
}

// TradeResult is the transient outcome of a settled trade. It is a
// response value only and is never persisted.
type TradeResult struct {
	Action       TradeAction      `json:"action"`
	CurrencyCode string           `json:"currency_code"`
	CurrencyName string           `json:"currency_name"`
	Amount       decimal.Decimal  `json:"amount"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	EstimatedUSD *decimal.Decimal `json:"estimated_usd,omitempty"`
	OldBalance   decimal.Decimal  `json:"old_balance"`
	NewBalance   decimal.Decimal  `json:"new_balance"`
}

// PortfolioRow is one wallet line in a portfolio view. Rate and Value
// are nil when no rate to the base currency could be resolved.
type PortfolioRow struct {
	CurrencyCode string           `json:"currency_code"`
	Balance      decimal.Decimal  `json:"balance"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
}

// PortfolioView is the rendered state of a user's portfolio in a base
// currency. Wallets without a resolvable rate contribute zero to Total.
type PortfolioView struct {
	UserID       int             `json:"user_id"`
	BaseCurrency string          `json:"base_currency"`
	Rows         []PortfolioRow  `json:"rows"`
	Total        decimal.Decimal `json:"total"`
}

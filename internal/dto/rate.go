package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateDetail is the caller-facing answer to a get-rate query.
// Reverse is nil when the resolved rate is zero.
type RateDetail struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Rate        decimal.Decimal  `json:"rate"`
	Reverse     *decimal.Decimal `json:"reverse,omitempty"`
	LastRefresh *time.Time       `json:"last_refresh,omitempty"`
}

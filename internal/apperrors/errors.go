package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a wallet does not hold enough balance for a withdrawal.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAPIRequest indicates that an external quote provider or the backing store failed.
// It marks a retryable transport/storage condition, never a domain rule violation.
var ErrAPIRequest = errors.New("api request failed")

// CurrencyNotFoundError reports a currency code that is not present in the registry.
// It carries the offending code so the presentation layer can suggest list-currencies.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency '%s'", e.Code)
}

func (e *CurrencyNotFoundError) Unwrap() error {
	return ErrNotFound
}

// InsufficientFundsError reports a withdrawal that exceeds the wallet balance.
// Available and Required let callers render the exact shortfall.
type InsufficientFundsError struct {
	CurrencyCode string
	Available    decimal.Decimal
	Required     decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available.StringFixed(4), e.CurrencyCode, e.Required.StringFixed(4), e.CurrencyCode)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// NoWalletError reports a sell against a currency the user never funded.
// Distinct from CurrencyNotFoundError: the currency itself may be perfectly valid.
type NoWalletError struct {
	CurrencyCode string
}

func (e *NoWalletError) Error() string {
	return fmt.Sprintf("no wallet for currency '%s'", e.CurrencyCode)
}

func (e *NoWalletError) Unwrap() error {
	return ErrValidation
}

// APIRequestError wraps a transport or storage failure from an external collaborator.
type APIRequestError struct {
	Reason string
	Err    error
}

func (e *APIRequestError) Error() string {
	return fmt.Sprintf("api request failed: %s", e.Reason)
}

func (e *APIRequestError) Unwrap() error {
	return ErrAPIRequest
}

// NewAPIRequestError wraps err as an APIRequestError with the given reason.
func NewAPIRequestError(reason string, err error) *APIRequestError {
	return &APIRequestError{Reason: reason, Err: err}
}

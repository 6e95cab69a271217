package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrClientNotFound indicates that a client with the given ID does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrSecurityNotFound indicates that a security with the given ID or name does not exist.
	ErrSecurityNotFound = errors.New("security not found")

	// ErrMovementNotFound indicates that a movement with the given ID does not exist.
	ErrMovementNotFound = errors.New("movement not found")

	// ErrPriceListNotFound indicates that no price list was uploaded on or before the requested date.
	ErrPriceListNotFound = errors.New("price list not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientBalance indicates that a sell exceeds the available holding.
	// Returned wrapped in an *InsufficientBalanceError that carries the available quantity.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrReferentialMismatch indicates that the portfolio does not belong to the stated
	// client, or that a referenced entity does not exist.
	ErrReferentialMismatch = errors.New("foreign-key mismatch")

	// ErrSellCreatesSecurity indicates that a sell referenced a security name that
	// has never been bought. A sell may never be the movement that creates a security.
	ErrSellCreatesSecurity = errors.New("sell references an unknown security")

	// ErrNoPricePairs indicates that an uploaded price file yielded no (ticker, price) pair.
	ErrNoPricePairs = errors.New("no price pairs detected")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDate indicates that a date parameter could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveClients    = errors.New("failed to retrieve clients")
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveSecurities = errors.New("failed to retrieve securities")
	ErrFailedToRetrieveMovements  = errors.New("failed to retrieve movements")
	ErrFailedToComputeBalance     = errors.New("failed to compute balance")
	ErrFailedToImportPrices       = errors.New("failed to import prices")
	ErrFailedToRetrievePrices     = errors.New("failed to retrieve prices")
	ErrFailedToValue              = errors.New("failed to compute valuation")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
)

// InsufficientBalanceError reports a rejected sell together with the quantity
// that could have been sold, so callers can render a precise message.
type InsufficientBalanceError struct {
	Requested float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: requested %g, available %g", ErrInsufficientBalance, e.Requested, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientBalance) match.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// AvailableFrom extracts the available quantity from an insufficient balance error.
func AvailableFrom(err error) (float64, bool) {
	var ibe *InsufficientBalanceError
	if errors.As(err, &ibe) {
		return ibe.Available, true
	}
	return 0, false
}

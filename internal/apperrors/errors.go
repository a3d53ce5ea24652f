package apperrors

import "errors"

// User input errors represent malformed or rejected user input.
// These are reported inline and never committed.
var (
	// ErrValidation indicates that user input failed validation
	// (e.g. a too-short company name or a non-positive share count).
	ErrValidation = errors.New("validation failed")

	// ErrStockNotFound indicates that no equity ticker could be resolved
	// for the submitted company name after all search endpoints were exhausted.
	ErrStockNotFound = errors.New("stock not found")
)

// External data errors represent failures of third-party collaborators.
var (
	// ErrDataFetch wraps any transport or parsing failure from an external
	// service (quote history, metadata, search). A purchase is never
	// committed when the quote fetch fails with this error.
	ErrDataFetch = errors.New("data fetch failed")
)

// Store errors represent missing entities in the portfolio store.
var (
	// ErrHoldingNotFound indicates that no holding exists for the given ticker.
	ErrHoldingNotFound = errors.New("holding not found")
)

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is (or wraps) a not-found error,
// covering both ticker resolution and store lookups.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStockNotFound) || errors.Is(err, ErrHoldingNotFound)
}

// IsDataFetch reports whether err is (or wraps) an external data failure.
func IsDataFetch(err error) bool { return errors.Is(err, ErrDataFetch) }

package validation

import (
	"strings"
	"time"

	"portfolio-tracker/internal/api/request"
	"portfolio-tracker/internal/session"
)

// ValidatePurchase validates a purchase submission.
//
// Required fields:
//   - company: at least 2 non-whitespace characters
//   - shares: integer >= 1
//   - price: >= 0.01
//   - date: YYYY-MM-DD if provided (empty defaults to today downstream)
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidatePurchase(req request.PurchaseRequest) error {
	errors := make(map[string]string)

	if len([]rune(strings.TrimSpace(req.Company))) < 2 {
		errors["company"] = "company name must be at least 2 characters long"
	}

	if req.Shares < 1 {
		errors["shares"] = "shares must be at least 1"
	}

	if req.Price < 0.01 {
		errors["price"] = "price must be at least 0.01"
	}

	if strings.TrimSpace(req.Date) != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCurrency validates a currency selection against the fixed set.
func ValidateCurrency(req request.CurrencyRequest) error {
	if !session.ValidCurrency(req.Currency) {
		return &Error{Fields: map[string]string{
			"currency": "currency must be one of ₹, $, €, £",
		}}
	}
	return nil
}

// ValidateTicker validates a ticker path or selection parameter.
func ValidateTicker(ticker string) error {
	trimmed := strings.TrimSpace(ticker)
	if trimmed == "" {
		return &Error{Fields: map[string]string{"ticker": "ticker is required"}}
	}
	if trimmed != strings.ToUpper(trimmed) {
		return &Error{Fields: map[string]string{"ticker": "ticker must be upper-case"}}
	}
	return nil
}

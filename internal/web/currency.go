package web

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// currencyCodes maps the selectable symbols to ISO currency codes.
var currencyCodes = map[string]string{
	"₹": "INR",
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// FormatAmount renders a decimal amount in the currency behind the given
// symbol, e.g. "₹1,500.00". Unknown symbols fall back to the default.
func FormatAmount(amount decimal.Decimal, symbol string) string {
	code, ok := currencyCodes[symbol]
	if !ok {
		code = "INR"
	}
	currency := money.New(0, code).Currency()
	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return currency.Formatter().Format(minor)
}

// FormatSignedAmount is FormatAmount with an explicit plus sign on
// non-negative amounts, for P&L figures.
func FormatSignedAmount(amount decimal.Decimal, symbol string) string {
	formatted := FormatAmount(amount, symbol)
	if amount.Sign() >= 0 {
		return "+" + formatted
	}
	return formatted
}

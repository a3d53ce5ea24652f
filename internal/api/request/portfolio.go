// Package request defines the JSON payloads accepted by the API.
package request

// PurchaseRequest is a purchase submission from the add-stock form.
// Company accepts either a free-text name or a ticker symbol. Date is
// YYYY-MM-DD and defaults to today when empty.
type PurchaseRequest struct {
	Company string  `json:"company"`
	Shares  int64   `json:"shares"`
	Price   float64 `json:"price"`
	Date    string  `json:"date"`
}

// CurrencyRequest selects the display currency symbol.
type CurrencyRequest struct {
	Currency string `json:"currency"`
}

// SelectRequest selects the holding shown in the news panel.
// An empty ticker clears the selection.
type SelectRequest struct {
	Ticker string `json:"ticker"`
}

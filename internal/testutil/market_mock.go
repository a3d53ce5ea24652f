package testutil

import (
	"context"

	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/model"
)

// MockMarketClient is a mock market data client for testing. It returns
// predefined tickers and quotes instead of making actual API calls.
type MockMarketClient struct {
	// Ticker is the symbol returned from Search
	Ticker string
	// SearchError is the error to return from Search
	SearchError error
	// Quotes maps symbols to the quotes returned from Quote
	Quotes map[string]model.Quote
	// QuoteError is the error to return from Quote
	QuoteError error
	// SearchCount tracks how many times Search was called
	SearchCount int
	// QuoteCount tracks how many times Quote was called
	QuoteCount int
}

// NewMockMarketClient creates a mock that resolves every search to AAPL
// with a default quote.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		Ticker: "AAPL",
		Quotes: map[string]model.Quote{
			"AAPL": {
				Symbol:     "AAPL",
				Name:       "Apple Inc.",
				Price:      160,
				PriorClose: 155,
				Change:     5,
				ChangePct:  3.23,
				Sector:     "Technology",
				Industry:   "Consumer Electronics",
			},
		},
	}
}

// Search mocks ticker resolution with the configured symbol and error.
func (m *MockMarketClient) Search(_ context.Context, _ string) (string, error) {
	m.SearchCount++
	if m.SearchError != nil {
		return "", m.SearchError
	}
	return m.Ticker, nil
}

// Quote mocks the quote fetch with the configured quotes and error.
func (m *MockMarketClient) Quote(_ context.Context, symbol string) (model.Quote, error) {
	m.QuoteCount++
	if m.QuoteError != nil {
		return model.Quote{}, m.QuoteError
	}
	quote, ok := m.Quotes[symbol]
	if !ok {
		return model.Quote{}, apperrors.ErrDataFetch
	}
	return quote, nil
}

// WithTicker configures the symbol returned from Search.
func (m *MockMarketClient) WithTicker(ticker string) *MockMarketClient {
	m.Ticker = ticker
	return m
}

// WithSearchError configures the mock to fail ticker resolution.
func (m *MockMarketClient) WithSearchError(err error) *MockMarketClient {
	m.SearchError = err
	return m
}

// WithQuote configures the quote returned for a symbol.
func (m *MockMarketClient) WithQuote(symbol string, quote model.Quote) *MockMarketClient {
	if m.Quotes == nil {
		m.Quotes = make(map[string]model.Quote)
	}
	m.Quotes[symbol] = quote
	return m
}

// WithQuoteError configures the mock to fail quote fetches.
func (m *MockMarketClient) WithQuoteError(err error) *MockMarketClient {
	m.QuoteError = err
	return m
}

// MockLogoResolver returns a fixed logo URL for every company.
type MockLogoResolver struct {
	URL string
}

// Resolve returns the configured URL.
func (m *MockLogoResolver) Resolve(_ context.Context, _ string) string {
	return m.URL
}

// MockNewsFetcher returns a fixed list of news items for every company.
type MockNewsFetcher struct {
	Items []model.NewsItem
}

// Fetch returns the configured items.
func (m *MockNewsFetcher) Fetch(_ context.Context, _ string) []model.NewsItem {
	return m.Items
}

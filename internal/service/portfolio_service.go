package service

import (
	"context"
	"sync"

	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/store"
)

// MarketData resolves company names to tickers and fetches quotes.
type MarketData interface {
	Search(ctx context.Context, name string) (string, error)
	Quote(ctx context.Context, symbol string) (model.Quote, error)
}

// LogoResolver resolves a company display name to a logo URL.
// Resolution never fails; a placeholder is returned on total probe failure.
type LogoResolver interface {
	Resolve(ctx context.Context, companyName string) string
}

// NewsFetcher retrieves a bounded list of headlines for a company.
// An empty slice means "no news", whether from empty results or from
// every source failing.
type NewsFetcher interface {
	Fetch(ctx context.Context, companyName string) []model.NewsItem
}

// PortfolioService coordinates purchase ingestion, holding removal, and
// dashboard aggregation across the store and the external fetchers.
//
// It also keeps a snapshot of the last successfully fetched quote per
// ticker so dashboard renders can fall back to stale data during partial
// outages instead of dropping the holding silently.
type PortfolioService struct {
	store  *store.HoldingStore
	market MarketData
	logos  LogoResolver
	news   NewsFetcher

	mu       sync.RWMutex
	snapshot map[string]model.Quote
}

// NewPortfolioService creates a PortfolioService with the provided
// dependencies. All parameters are required.
func NewPortfolioService(
	holdingStore *store.HoldingStore,
	market MarketData,
	logos LogoResolver,
	news NewsFetcher,
) *PortfolioService {
	return &PortfolioService{
		store:    holdingStore,
		market:   market,
		logos:    logos,
		news:     news,
		snapshot: make(map[string]model.Quote),
	}
}

// RemoveHolding deletes the ticker's holding and all its lots atomically.
func (s *PortfolioService) RemoveHolding(ticker string) error {
	return s.store.RemoveHolding(ticker)
}

// GetPortfolio returns the current portfolio mapping.
func (s *PortfolioService) GetPortfolio() (model.Portfolio, error) {
	return s.store.GetPortfolio()
}

// snapshotQuote returns the last good quote for a ticker, if any.
func (s *PortfolioService) snapshotQuote(ticker string) (model.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quote, ok := s.snapshot[ticker]
	return quote, ok
}

// storeSnapshot records the last good quote for a ticker.
func (s *PortfolioService) storeSnapshot(ticker string, quote model.Quote) {
	s.mu.Lock()
	s.snapshot[ticker] = quote
	s.mu.Unlock()
}

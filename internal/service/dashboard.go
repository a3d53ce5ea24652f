package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/session"
)

// quoteFetchLimit bounds concurrent outbound quote fetches per render.
const quoteFetchLimit = 4

// BuildDashboard assembles the full render model for one dashboard request:
// live quotes and logos for every holding, the aggregated summary, and the
// news panel for the session's selected holding.
//
// Quote fetches fan out concurrently. A holding whose fetch fails falls
// back to the last snapshot quote if one exists; otherwise it is rendered
// without figures and excluded from the totals (flagged in the summary).
func (s *PortfolioService) BuildDashboard(ctx context.Context, sess session.Session) (model.DashboardView, error) {
	portfolio, err := s.store.GetPortfolio()
	if err != nil {
		return model.DashboardView{}, err
	}

	quotes := s.fetchQuotes(ctx, portfolio)
	views, summary := Aggregate(portfolio, quotes)

	logos := s.fetchLogos(ctx, views)
	for i := range views {
		views[i].LogoURL = logos[views[i].Ticker]
	}

	view := model.DashboardView{
		Currency: sess.Currency,
		Summary:  summary,
		Holdings: views,
		Messages: sess.Messages,
	}

	if sess.Selected != "" {
		if holding, ok := portfolio[sess.Selected]; ok {
			name := holding.Name
			if quote, ok := quotes[sess.Selected]; ok && quote.Name != "" {
				name = quote.Name
			}
			panel := s.BuildNewsPanel(ctx, sess.Selected, name)
			view.News = &panel
		}
	}

	return view, nil
}

// BuildNewsPanel fetches news for a holding and splits it into the three
// inline items and the expandable remainder. An empty fetch result renders
// as "no recent news"; it is never an error.
func (s *PortfolioService) BuildNewsPanel(ctx context.Context, ticker, name string) model.NewsPanel {
	items := s.news.Fetch(ctx, name)

	panel := model.NewsPanel{Ticker: ticker, Name: name}
	if len(items) > 3 {
		panel.Top = items[:3]
		panel.Overflow = items[3:]
	} else {
		panel.Top = items
	}
	return panel
}

// fetchQuotes fetches quotes for every held ticker concurrently.
// Failures are logged and fall back to the snapshot; the returned map
// only contains tickers with a live or snapshot quote.
func (s *PortfolioService) fetchQuotes(ctx context.Context, portfolio model.Portfolio) map[string]model.Quote {
	var (
		mu     sync.Mutex
		quotes = make(map[string]model.Quote, len(portfolio))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteFetchLimit)

	for ticker := range portfolio {
		ticker := ticker
		g.Go(func() error {
			quote, err := s.market.Quote(gctx, ticker)
			if err != nil {
				logger.L().Warn("quote refresh failed, holding skipped",
					zap.String("ticker", ticker),
					zap.Error(err),
				)
				snapshot, ok := s.snapshotQuote(ticker)
				if !ok {
					return nil
				}
				quote = snapshot
			} else {
				s.storeSnapshot(ticker, quote)
			}

			mu.Lock()
			quotes[ticker] = quote
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; they degrade per ticker instead.
	_ = g.Wait()
	return quotes
}

// fetchLogos resolves logo URLs for the rendered holdings concurrently.
func (s *PortfolioService) fetchLogos(ctx context.Context, views []model.HoldingView) map[string]string {
	var (
		mu    sync.Mutex
		logos = make(map[string]string, len(views))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteFetchLimit)

	for _, view := range views {
		view := view
		g.Go(func() error {
			url := s.logos.Resolve(gctx, view.Name)
			mu.Lock()
			logos[view.Ticker] = url
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return logos
}

// RefreshSnapshot fetches fresh quotes for all held tickers into the
// snapshot. Used by the optional background refresher; per-ticker failures
// are logged and skipped.
func (s *PortfolioService) RefreshSnapshot(ctx context.Context) {
	tickers, err := s.store.Tickers()
	if err != nil {
		logger.L().Error("snapshot refresh failed to list tickers", zap.Error(err))
		return
	}

	for _, ticker := range tickers {
		quote, err := s.market.Quote(ctx, ticker)
		if err != nil {
			logger.L().Warn("snapshot refresh failed",
				zap.String("ticker", ticker),
				zap.Error(err),
			)
			continue
		}
		s.storeSnapshot(ticker, quote)
	}
}

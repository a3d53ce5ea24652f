// Package marketdata resolves free-text company names to ticker symbols and
// fetches quotes from the Yahoo Finance endpoints.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"portfolio-tracker/internal/apperrors"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Default endpoint templates. All take one %s verb: the URL-escaped query
// for search, the symbol for chart and summary.
const (
	defaultChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d"
	defaultSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=summaryDetail,assetProfile"
)

var defaultSearchURLs = []string{
	"https://query2.finance.yahoo.com/v1/finance/search?q=%s",
	"https://query1.finance.yahoo.com/v7/finance/search?q=%s",
}

// FinanceClient provides methods for resolving tickers and fetching quote
// data. It wraps an HTTP client with a fixed per-call timeout; calls are
// never retried.
type FinanceClient struct {
	httpClient *http.Client

	// Endpoint templates, overridable in tests.
	searchURLs []string
	chartURL   string
	summaryURL string
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithSearchURLs overrides the search endpoint templates, in priority order.
func WithSearchURLs(urls ...string) Option {
	return func(c *FinanceClient) { c.searchURLs = urls }
}

// WithChartURL overrides the chart endpoint template.
func WithChartURL(url string) Option {
	return func(c *FinanceClient) { c.chartURL = url }
}

// WithSummaryURL overrides the quote summary endpoint template.
func WithSummaryURL(url string) Option {
	return func(c *FinanceClient) { c.summaryURL = url }
}

// NewFinanceClient creates a client with the given outbound timeout.
func NewFinanceClient(timeout time.Duration, opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		searchURLs: defaultSearchURLs,
		chartURL:   defaultChartURL,
		summaryURL: defaultSummaryURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON executes a GET request and decodes the JSON body into out.
// Sets the User-Agent required to avoid provider blocking and treats any
// non-2xx status as an error.
func (c *FinanceClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

// Chart fetches the trailing five trading days of daily price data for a
// symbol and parses it into a PriceChart. An empty result set, missing
// timestamps, or mismatched array lengths fail the fetch entirely.
func (c *FinanceClient) Chart(ctx context.Context, symbol string) (PriceChart, error) {
	var response chartResponse
	if err := c.getJSON(ctx, fmt.Sprintf(c.chartURL, symbol), &response); err != nil {
		return PriceChart{}, fmt.Errorf("%w: chart for %s: %v", apperrors.ErrDataFetch, symbol, err)
	}

	if response.Chart.Error != nil {
		return PriceChart{}, fmt.Errorf("%w: chart for %s: %s", apperrors.ErrDataFetch, symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no chart results for %s", apperrors.ErrDataFetch, symbol)
	}

	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no price history for %s", apperrors.ErrDataFetch, symbol)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no close prices for %s", apperrors.ErrDataFetch, symbol)
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("%w: mismatched data lengths for %s", apperrors.ErrDataFetch, symbol)
	}

	quote := result.Indicators.Quote[0]
	sessions := make([]Session, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Null closes mark holidays and in-progress sessions; a session
		// without a close carries no quotable price, so drop it.
		if quote.Close[i] == nil {
			continue
		}
		session := Session{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			session.PriceOpen = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			session.PriceHigh = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			session.PriceLow = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			session.Volume = *quote.Volume[i]
		}
		sessions = append(sessions, session)
	}
	if len(sessions) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no usable close prices for %s", apperrors.ErrDataFetch, symbol)
	}

	return PriceChart{
		Symbol:    result.Meta.Symbol,
		Currency:  result.Meta.Currency,
		LongName:  result.Meta.LongName,
		ShortName: result.Meta.Shortname,
		Sessions:  sessions,
	}, nil
}

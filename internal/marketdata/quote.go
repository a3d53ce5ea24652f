package marketdata

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/model"
)

// Quote fetches a full quote for the symbol: price history from the chart
// endpoint plus optional fundamentals from the quote summary endpoint.
//
// The chart fetch is mandatory; its failure fails the quote. The summary
// fetch is best-effort: on any failure the fundamentals keep their zero /
// "Unknown" defaults, matching the degenerate cases the dashboard renders.
func (c *FinanceClient) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	chart, err := c.Chart(ctx, symbol)
	if err != nil {
		return model.Quote{}, err
	}

	quote := buildQuote(chart)
	c.applyFundamentals(ctx, symbol, &quote)
	return quote, nil
}

// buildQuote derives the quote figures from a price chart.
//
// Current price is the last session's close; prior is the second-to-last
// close, or the current price itself when only one session exists, in which
// case the change degenerates to zero. Change-percent is zero when the
// prior close is zero.
func buildQuote(chart PriceChart) model.Quote {
	last := chart.Sessions[len(chart.Sessions)-1]

	current := last.PriceClose
	prior := current
	if len(chart.Sessions) > 1 {
		prior = chart.Sessions[len(chart.Sessions)-2].PriceClose
	}

	change := current - prior
	changePct := 0.0
	if prior != 0 {
		changePct = change / prior * 100
	}

	name := chart.ShortName
	if name == "" {
		name = chart.LongName
	}
	if name == "" {
		name = chart.Symbol
	}

	return model.Quote{
		Symbol:     chart.Symbol,
		Name:       name,
		Price:      current,
		PriorClose: prior,
		Change:     change,
		ChangePct:  changePct,
		Volume:     last.Volume,
		Sector:     "Unknown",
		Industry:   "Unknown",
	}
}

// applyFundamentals fills the quote's optional fundamentals from the
// summary endpoint. Failures are logged and leave the defaults in place.
func (c *FinanceClient) applyFundamentals(ctx context.Context, symbol string, quote *model.Quote) {
	if c.summaryURL == "" {
		return
	}

	var response summaryResponse
	if err := c.getJSON(ctx, fmt.Sprintf(c.summaryURL, symbol), &response); err != nil {
		logger.L().Warn("quote summary fetch failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return
	}
	if len(response.QuoteSummary.Result) == 0 {
		return
	}

	result := response.QuoteSummary.Result[0]
	detail := result.SummaryDetail

	quote.PERatio = detail.TrailingPE.Raw
	quote.DividendYield = detail.DividendYield.Raw
	quote.WeekHigh52 = detail.FiftyTwoWeekHigh.Raw
	quote.WeekLow52 = detail.FiftyTwoWeekLow.Raw
	quote.MarketCap = detail.MarketCap.Raw
	if detail.Volume.Raw > 0 {
		quote.Volume = int64(detail.Volume.Raw)
	}
	if result.AssetProfile.Sector != "" {
		quote.Sector = result.AssetProfile.Sector
	}
	if result.AssetProfile.Industry != "" {
		quote.Industry = result.AssetProfile.Industry
	}
}

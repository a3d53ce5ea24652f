package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Aggregate folds the portfolio and a parallel ticker→Quote mapping into
// per-holding views and the portfolio summary. It is a pure function; the
// quote map may omit tickers whose fetch failed.
//
// Per holding: average cost = total cost / quantity (zero when quantity is
// zero); current value = quote price × quantity; P&L = value − cost;
// P&L% = P&L / cost × 100, zero when the cost basis is zero.
//
// Portfolio totals sum only holdings with a quote. Holdings without one
// are excluded from the totals — the totals therefore understate during a
// partial outage — but they are counted in QuotesMissing and the summary
// is flagged partial so the renderer can say so.
func Aggregate(portfolio model.Portfolio, quotes map[string]model.Quote) ([]model.HoldingView, model.PortfolioSummary) {
	tickers := make([]string, 0, len(portfolio))
	for ticker := range portfolio {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	var (
		views         []model.HoldingView
		totalValue    decimal.Decimal
		totalInvested decimal.Decimal
		missing       int
	)

	for _, ticker := range tickers {
		holding := portfolio[ticker]
		quote, ok := quotes[ticker]

		view := model.HoldingView{
			Ticker:      ticker,
			Name:        holding.Name,
			Quantity:    holding.Quantity,
			AverageCost: holding.AverageCost().Round(2).InexactFloat64(),
			Invested:    holding.TotalCost.Round(2).InexactFloat64(),
		}

		if !ok {
			view.QuoteMissing = true
			missing++
			views = append(views, view)
			continue
		}

		quantity := decimal.NewFromInt(holding.Quantity)
		value := decimal.NewFromFloat(quote.Price).Mul(quantity)
		profitLoss := value.Sub(holding.TotalCost)
		profitPct := decimal.Zero
		if holding.TotalCost.IsPositive() {
			profitPct = profitLoss.Div(holding.TotalCost).Mul(hundred)
		}

		if quote.Name != "" {
			view.Name = quote.Name
		}
		view.Sector = quote.Sector
		view.Price = quote.Price
		view.CurrentValue = value.Round(2).InexactFloat64()
		view.ProfitLoss = profitLoss.Round(2).InexactFloat64()
		view.ProfitLossPct = profitPct.Round(2).InexactFloat64()

		totalValue = totalValue.Add(value)
		totalInvested = totalInvested.Add(holding.TotalCost)
		views = append(views, view)
	}

	totalPL := totalValue.Sub(totalInvested)
	returnPct := decimal.Zero
	if totalInvested.IsPositive() {
		returnPct = totalPL.Div(totalInvested).Mul(hundred)
	}

	summary := model.PortfolioSummary{
		TotalValue:    totalValue.Round(2).InexactFloat64(),
		TotalInvested: totalInvested.Round(2).InexactFloat64(),
		TotalPL:       totalPL.Round(2).InexactFloat64(),
		ReturnPct:     returnPct.Round(2).InexactFloat64(),
		QuotesMissing: missing,
		Partial:       missing > 0,
	}

	return views, summary
}

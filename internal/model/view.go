package model

// HoldingView is the render model for one dashboard tile: the holding
// combined with its live quote and derived profit/loss figures.
// Monetary fields are pre-formatted with the session currency by the
// renderer; the raw values stay here for the JSON API.
type HoldingView struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	LogoURL       string  `json:"logoUrl"`
	Sector        string  `json:"sector"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	AverageCost   float64 `json:"averageCost"`
	Invested      float64 `json:"invested"`
	CurrentValue  float64 `json:"currentValue"`
	ProfitLoss    float64 `json:"profitLoss"`
	ProfitLossPct float64 `json:"profitLossPct"`
	QuoteMissing  bool    `json:"quoteMissing"`
}

// PortfolioSummary carries the four portfolio-level metrics.
// When one or more quote fetches failed, the excluded holdings are counted
// in QuotesMissing and Partial is set so the renderer can flag the totals
// as understated instead of presenting them as complete.
type PortfolioSummary struct {
	TotalValue    float64 `json:"totalValue"`
	TotalInvested float64 `json:"totalInvested"`
	TotalPL       float64 `json:"totalPl"`
	ReturnPct     float64 `json:"returnPct"`
	QuotesMissing int     `json:"quotesMissing"`
	Partial       bool    `json:"partial"`
}

// NewsPanel splits fetched news into the inline top items and the
// expandable overflow list.
type NewsPanel struct {
	Ticker   string     `json:"ticker"`
	Name     string     `json:"name"`
	Top      []NewsItem `json:"top"`
	Overflow []NewsItem `json:"overflow"`
}

// DashboardView is the complete render model for one dashboard request.
type DashboardView struct {
	Currency string           `json:"currency"`
	Summary  PortfolioSummary `json:"summary"`
	Holdings []HoldingView    `json:"holdings"`
	News     *NewsPanel       `json:"news,omitempty"`
	Messages []string         `json:"messages,omitempty"`
}

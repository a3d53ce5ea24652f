package model

// Quote is a snapshot of market data for one instrument.
// Quotes are ephemeral: fetched fresh for a render and discarded, never
// persisted. Optional fundamentals default to zero / "Unknown" when the
// provider omits them.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PriorClose    float64 `json:"priorClose"`
	Change        float64 `json:"change"`
	ChangePct     float64 `json:"changePct"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	PERatio       float64 `json:"peRatio"`
	DividendYield float64 `json:"dividendYield"`
	WeekHigh52    float64 `json:"fiftyTwoWeekHigh"`
	WeekLow52     float64 `json:"fiftyTwoWeekLow"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
}

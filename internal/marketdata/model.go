package marketdata

import "time"

// searchResponse represents the raw JSON response from the Yahoo Finance
// search endpoints. Only the fields the resolver inspects are mapped.
type searchResponse struct {
	Quotes []searchQuote `json:"quotes"`
}

// searchQuote is one candidate instrument from a search response.
type searchQuote struct {
	Symbol    string `json:"symbol"`
	QuoteType string `json:"quoteType"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
}

// chartResponse represents the raw JSON response structure from the Yahoo
// Finance chart API. The structure contains nested result objects with
// symbol metadata, Unix timestamps, and parallel price arrays.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency         string `json:"currency"`
		Symbol           string `json:"symbol"`
		ExchangeName     string `json:"exchangeName"`
		FullExchangeName string `json:"fullExchangeName"`
		LongName         string `json:"longName"`
		Shortname        string `json:"shortName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		// Price arrays are pointers: the provider sends JSON null for
		// holidays and in-progress sessions.
		Quote []struct {
			Open   []*float64 `json:"open"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
		} `json:"quote"`
	} `json:"indicators"`
}

// PriceChart is the parsed, structured price history for one instrument.
// Sessions are ordered oldest first, matching the provider's ordering.
type PriceChart struct {
	Symbol    string    `json:"symbol"`
	Currency  string    `json:"currency"`
	LongName  string    `json:"longName"`
	ShortName string    `json:"shortName"`
	Sessions  []Session `json:"sessions"`
}

// Session represents a single trading day's OHLCV data.
type Session struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	PriceHigh  float64
	PriceLow   float64
	Volume     int64
}

// rawValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper.
// Only the raw value is used.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// summaryResponse represents the raw quoteSummary response carrying
// optional fundamentals. Any missing module or field defaults to zero.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE       rawValue `json:"trailingPE"`
				DividendYield    rawValue `json:"dividendYield"`
				FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
				Volume           rawValue `json:"volume"`
				MarketCap        rawValue `json:"marketCap"`
			} `json:"summaryDetail"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

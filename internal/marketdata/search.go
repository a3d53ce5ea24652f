package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/logger"
)

// Search resolves a free-text company name to an exchange ticker symbol.
//
// The input must contain at least two non-whitespace characters; shorter
// input fails with a validation error before any network call is made.
//
// Endpoints are queried in fixed priority order. The first result whose
// quote type is EQUITY with a non-empty symbol wins. A transport failure,
// non-2xx status, or malformed body from one endpoint is treated as "no
// match from this endpoint" and the next endpoint is tried; only total
// exhaustion surfaces an error.
func (c *FinanceClient) Search(ctx context.Context, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return "", fmt.Errorf("%w: company name must be at least 2 characters long", apperrors.ErrValidation)
	}

	escaped := url.QueryEscape(trimmed)
	for _, endpoint := range c.searchURLs {
		var result searchResponse
		if err := c.getJSON(ctx, fmt.Sprintf(endpoint, escaped), &result); err != nil {
			logger.L().Warn("ticker search endpoint failed",
				zap.String("query", trimmed),
				zap.Error(err),
			)
			continue
		}

		for _, quote := range result.Quotes {
			if strings.EqualFold(quote.QuoteType, "EQUITY") && quote.Symbol != "" {
				return quote.Symbol, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no ticker found for %q", apperrors.ErrStockNotFound, trimmed)
}

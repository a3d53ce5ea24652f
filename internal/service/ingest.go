package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/model"
)

// IngestState is the state of one purchase submission.
//
// A submission moves Idle → Resolving → Fetching → Committed, or lands in
// Failed at any step. Failed is terminal for that submission; the user must
// resubmit. A lot is appended only after both ticker resolution and the
// quote fetch succeed — there is no partial commit.
type IngestState int

const (
	StateIdle IngestState = iota
	StateResolving
	StateFetching
	StateCommitted
	StateFailed
)

// String returns the state name for logging.
func (s IngestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PurchaseRequest is a validated purchase submission.
type PurchaseRequest struct {
	Company string
	Shares  int64
	Price   decimal.Decimal
	Date    time.Time
}

// PurchaseResult describes the terminal state of a purchase submission.
// On commit it carries the figures for the confirmation message.
type PurchaseResult struct {
	State        IngestState
	Ticker       string
	Name         string
	Shares       int64
	Price        decimal.Decimal
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	ProfitLoss   decimal.Decimal
	ProfitPct    decimal.Decimal
}

// Purchase runs one submission through the ingestion state machine.
//
// The returned error carries the failure kind (validation, not-found, or
// data-fetch) when the result state is Failed; holding state is unchanged
// in every failure case.
func (s *PortfolioService) Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResult, error) {
	log := logger.L().With(zap.String("company", req.Company))

	state := StateResolving
	log.Debug("purchase state", zap.Stringer("state", state))

	ticker, err := s.market.Search(ctx, req.Company)
	if err != nil {
		log.Info("purchase failed during resolution", zap.Error(err))
		return PurchaseResult{State: StateFailed}, err
	}

	state = StateFetching
	log.Debug("purchase state", zap.Stringer("state", state), zap.String("ticker", ticker))

	quote, err := s.market.Quote(ctx, ticker)
	if err != nil {
		log.Info("purchase failed during quote fetch",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		return PurchaseResult{State: StateFailed, Ticker: ticker}, err
	}

	lot := model.Lot{
		ID:           uuid.NewString(),
		Ticker:       ticker,
		Quantity:     req.Shares,
		Price:        req.Price,
		PurchaseDate: req.Date,
	}
	if err := s.store.AddLot(quote.Name, lot); err != nil {
		log.Error("purchase failed during commit", zap.String("ticker", ticker), zap.Error(err))
		return PurchaseResult{State: StateFailed, Ticker: ticker}, err
	}
	s.storeSnapshot(ticker, quote)

	invested := lot.Total()
	currentValue := decimal.NewFromFloat(quote.Price).Mul(decimal.NewFromInt(req.Shares))
	profitLoss := currentValue.Sub(invested)
	profitPct := decimal.Zero
	if invested.IsPositive() {
		profitPct = profitLoss.Div(invested).Mul(decimal.NewFromInt(100)).Round(2)
	}

	log.Info("purchase committed",
		zap.String("ticker", ticker),
		zap.Int64("shares", req.Shares),
		zap.String("invested", invested.String()),
	)

	return PurchaseResult{
		State:        StateCommitted,
		Ticker:       ticker,
		Name:         quote.Name,
		Shares:       req.Shares,
		Price:        req.Price,
		Invested:     invested,
		CurrentValue: currentValue,
		ProfitLoss:   profitLoss,
		ProfitPct:    profitPct,
	}, nil
}

// Package refresh schedules background quote snapshot refreshes.
package refresh

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/service"
)

// Refresher periodically refreshes the quote snapshot for all held tickers
// so dashboard renders can fall back to recent data during partial outages.
// It is optional: an empty schedule disables it entirely.
type Refresher struct {
	cron *cron.Cron
}

// New creates a refresher on the given cron schedule. Returns (nil, nil)
// when the schedule is empty.
func New(schedule string, svc *service.PortfolioService, timeout time.Duration) (*Refresher, error) {
	if schedule == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		svc.RefreshSnapshot(ctx)
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("quote refresher scheduled", zap.String("schedule", schedule))
	return &Refresher{cron: c}, nil
}

// Start begins the schedule. Safe to call on a nil refresher.
func (r *Refresher) Start() {
	if r != nil {
		r.cron.Start()
	}
}

// Stop halts the schedule and waits for a running refresh to finish.
// Safe to call on a nil refresher.
func (r *Refresher) Stop() {
	if r != nil {
		<-r.cron.Stop().Done()
	}
}

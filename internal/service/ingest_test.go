package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/internal/testutil"
)

func newTestService(t *testing.T, market *testutil.MockMarketClient) *service.PortfolioService {
	t.Helper()

	holdingStore, _ := testutil.SetupTestStore(t)
	return service.NewPortfolioService(
		holdingStore,
		market,
		&testutil.MockLogoResolver{URL: "https://example.com/logo.png"},
		&testutil.MockNewsFetcher{},
	)
}

func purchaseRequest(company string, shares int64, price string) service.PurchaseRequest {
	return service.PurchaseRequest{
		Company: company,
		Shares:  shares,
		Price:   decimal.RequireFromString(price),
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// TestPortfolioService_Purchase tests the purchase ingestion state machine.
//
// WHY: A lot must be appended only after both ticker resolution and the
// quote fetch succeed. Any failure path must leave the portfolio unchanged;
// a partial commit would corrupt the cost basis permanently.
func TestPortfolioService_Purchase(t *testing.T) {
	t.Run("commits a lot on success", func(t *testing.T) {
		market := testutil.NewMockMarketClient()
		svc := newTestService(t, market)

		result, err := svc.Purchase(context.Background(), purchaseRequest("apple", 10, "150"))
		if err != nil {
			t.Fatalf("Purchase() returned unexpected error: %v", err)
		}

		if result.State != service.StateCommitted {
			t.Errorf("Expected state committed, got %s", result.State)
		}
		if result.Ticker != "AAPL" {
			t.Errorf("Expected ticker AAPL, got %s", result.Ticker)
		}
		if result.Name != "Apple Inc." {
			t.Errorf("Expected resolved name, got %q", result.Name)
		}
		if !result.Invested.Equal(decimal.RequireFromString("1500")) {
			t.Errorf("Expected invested 1500, got %s", result.Invested)
		}
		if !result.CurrentValue.Equal(decimal.RequireFromString("1600")) {
			t.Errorf("Expected current value 1600, got %s", result.CurrentValue)
		}
		if !result.ProfitLoss.Equal(decimal.RequireFromString("100")) {
			t.Errorf("Expected P&L 100, got %s", result.ProfitLoss)
		}
		if !result.ProfitPct.Equal(decimal.RequireFromString("6.67")) {
			t.Errorf("Expected P&L%% 6.67, got %s", result.ProfitPct)
		}

		portfolio, err := svc.GetPortfolio()
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		holding, ok := portfolio["AAPL"]
		if !ok {
			t.Fatal("Expected AAPL holding after commit")
		}
		if holding.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %d", holding.Quantity)
		}
		if len(holding.Lots) != 1 {
			t.Errorf("Expected 1 lot, got %d", len(holding.Lots))
		}
	})

	t.Run("repeat purchase accumulates into the same holding", func(t *testing.T) {
		market := testutil.NewMockMarketClient()
		svc := newTestService(t, market)

		if _, err := svc.Purchase(context.Background(), purchaseRequest("apple", 10, "150")); err != nil {
			t.Fatalf("first Purchase() failed: %v", err)
		}
		if _, err := svc.Purchase(context.Background(), purchaseRequest("apple", 5, "170")); err != nil {
			t.Fatalf("second Purchase() failed: %v", err)
		}

		portfolio, err := svc.GetPortfolio()
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		holding := portfolio["AAPL"]
		if holding.Quantity != 15 {
			t.Errorf("Expected quantity 15, got %d", holding.Quantity)
		}
		if !holding.TotalCost.Equal(decimal.RequireFromString("2350")) {
			t.Errorf("Expected total cost 2350, got %s", holding.TotalCost)
		}
		if len(holding.Lots) != 2 {
			t.Errorf("Expected 2 lots, got %d", len(holding.Lots))
		}
	})

	t.Run("resolution failure leaves portfolio unchanged", func(t *testing.T) {
		market := testutil.NewMockMarketClient().WithSearchError(apperrors.ErrStockNotFound)
		svc := newTestService(t, market)

		result, err := svc.Purchase(context.Background(), purchaseRequest("nonexistent corp", 10, "150"))
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("Expected stock-not-found error, got %v", err)
		}
		if result.State != service.StateFailed {
			t.Errorf("Expected state failed, got %s", result.State)
		}
		if market.QuoteCount != 0 {
			t.Errorf("Expected no quote fetch after failed resolution, got %d", market.QuoteCount)
		}

		portfolio, _ := svc.GetPortfolio()
		if len(portfolio) != 0 {
			t.Errorf("Expected empty portfolio after failure, got %d holdings", len(portfolio))
		}
	})

	t.Run("quote failure leaves portfolio unchanged", func(t *testing.T) {
		market := testutil.NewMockMarketClient().WithQuoteError(apperrors.ErrDataFetch)
		svc := newTestService(t, market)

		result, err := svc.Purchase(context.Background(), purchaseRequest("apple", 10, "150"))
		if !errors.Is(err, apperrors.ErrDataFetch) {
			t.Fatalf("Expected data-fetch error, got %v", err)
		}
		if result.State != service.StateFailed {
			t.Errorf("Expected state failed, got %s", result.State)
		}

		portfolio, _ := svc.GetPortfolio()
		if len(portfolio) != 0 {
			t.Errorf("Expected empty portfolio after failure, got %d holdings", len(portfolio))
		}
	})
}

// TestPortfolioService_RemoveHolding tests removal and the fresh cost basis
// on re-purchase.
func TestPortfolioService_RemoveHolding(t *testing.T) {
	t.Run("removes holding and all lots", func(t *testing.T) {
		market := testutil.NewMockMarketClient()
		svc := newTestService(t, market)

		if _, err := svc.Purchase(context.Background(), purchaseRequest("apple", 10, "150")); err != nil {
			t.Fatalf("Purchase() failed: %v", err)
		}

		if err := svc.RemoveHolding("AAPL"); err != nil {
			t.Fatalf("RemoveHolding() returned unexpected error: %v", err)
		}

		portfolio, _ := svc.GetPortfolio()
		if len(portfolio) != 0 {
			t.Errorf("Expected empty portfolio after removal, got %d holdings", len(portfolio))
		}
	})

	t.Run("re-adding starts a fresh cost basis", func(t *testing.T) {
		market := testutil.NewMockMarketClient()
		svc := newTestService(t, market)

		if _, err := svc.Purchase(context.Background(), purchaseRequest("apple", 10, "150")); err != nil {
			t.Fatalf("Purchase() failed: %v", err)
		}
		if err := svc.RemoveHolding("AAPL"); err != nil {
			t.Fatalf("RemoveHolding() failed: %v", err)
		}
		if _, err := svc.Purchase(context.Background(), purchaseRequest("apple", 3, "200")); err != nil {
			t.Fatalf("re-Purchase() failed: %v", err)
		}

		portfolio, _ := svc.GetPortfolio()
		holding := portfolio["AAPL"]
		if holding.Quantity != 3 {
			t.Errorf("Expected fresh quantity 3, got %d", holding.Quantity)
		}
		if !holding.TotalCost.Equal(decimal.RequireFromString("600")) {
			t.Errorf("Expected fresh cost 600, got %s", holding.TotalCost)
		}
		if len(holding.Lots) != 1 {
			t.Errorf("Expected 1 fresh lot, got %d", len(holding.Lots))
		}
	})

	t.Run("unknown ticker reports not found", func(t *testing.T) {
		svc := newTestService(t, testutil.NewMockMarketClient())

		err := svc.RemoveHolding("AAPL")
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected holding-not-found error, got %v", err)
		}
	})
}

// TestIngestState_String covers the state names used in logs.
func TestIngestState_String(t *testing.T) {
	states := map[service.IngestState]string{
		service.StateIdle:      "idle",
		service.StateResolving: "resolving",
		service.StateFetching:  "fetching",
		service.StateCommitted: "committed",
		service.StateFailed:    "failed",
	}
	for state, want := range states {
		if got := state.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

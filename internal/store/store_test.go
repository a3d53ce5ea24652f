package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/store"
	"portfolio-tracker/internal/testutil"
)

func testLot(ticker string, quantity int64, price string) model.Lot {
	return model.Lot{
		ID:           uuid.NewString(),
		Ticker:       ticker,
		Quantity:     quantity,
		Price:        decimal.RequireFromString(price),
		PurchaseDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// TestHoldingStore_AddLot tests lot appends and aggregate maintenance.
//
// WHY: The holding row's quantity and total_cost are updated in the same
// transaction as the lot insert. The figures must stay exact decimal sums
// across any append sequence.
func TestHoldingStore_AddLot(t *testing.T) {
	t.Run("first lot creates the holding", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.AddLot("Apple Inc.", testLot("AAPL", 10, "150")); err != nil {
			t.Fatalf("AddLot() returned unexpected error: %v", err)
		}

		holding, err := s.GetHolding("AAPL")
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if holding.Name != "Apple Inc." {
			t.Errorf("Expected resolved name, got %q", holding.Name)
		}
		if holding.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %d", holding.Quantity)
		}
		if !holding.TotalCost.Equal(decimal.RequireFromString("1500")) {
			t.Errorf("Expected total cost 1500, got %s", holding.TotalCost)
		}
		if len(holding.Lots) != 1 {
			t.Errorf("Expected 1 lot, got %d", len(holding.Lots))
		}
	})

	t.Run("subsequent lots accumulate exactly", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.AddLot("Apple Inc.", testLot("AAPL", 3, "10.33")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}
		if err := s.AddLot("Apple Inc.", testLot("AAPL", 7, "99.01")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		holding, err := s.GetHolding("AAPL")
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if holding.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %d", holding.Quantity)
		}
		// 3*10.33 + 7*99.01 = 30.99 + 693.07
		if !holding.TotalCost.Equal(decimal.RequireFromString("724.06")) {
			t.Errorf("Expected total cost 724.06, got %s", holding.TotalCost)
		}
	})

	t.Run("lots come back in append order", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		first := testLot("AAPL", 1, "100")
		second := testLot("AAPL", 2, "110")
		third := testLot("AAPL", 3, "120")
		for _, lot := range []model.Lot{first, second, third} {
			if err := s.AddLot("Apple Inc.", lot); err != nil {
				t.Fatalf("AddLot() failed: %v", err)
			}
		}

		holding, err := s.GetHolding("AAPL")
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if len(holding.Lots) != 3 {
			t.Fatalf("Expected 3 lots, got %d", len(holding.Lots))
		}
		want := []string{first.ID, second.ID, third.ID}
		for i, id := range want {
			if holding.Lots[i].ID != id {
				t.Errorf("Expected lot %d to be %s, got %s", i, id, holding.Lots[i].ID)
			}
		}
	})

	t.Run("latest name wins", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.AddLot("apple", testLot("AAPL", 1, "100")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}
		if err := s.AddLot("Apple Inc.", testLot("AAPL", 1, "100")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		holding, _ := s.GetHolding("AAPL")
		if holding.Name != "Apple Inc." {
			t.Errorf("Expected the latest name, got %q", holding.Name)
		}
	})

	t.Run("duplicate lot id commits nothing", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		lot := testLot("AAPL", 10, "150")
		if err := s.AddLot("Apple Inc.", lot); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		// Same primary key: the insert fails and the aggregate update
		// must roll back with it.
		if err := s.AddLot("Apple Inc.", lot); err == nil {
			t.Fatal("Expected an error for a duplicate lot id")
		}

		holding, _ := s.GetHolding("AAPL")
		if holding.Quantity != 10 {
			t.Errorf("Expected quantity unchanged at 10, got %d", holding.Quantity)
		}
		if !holding.TotalCost.Equal(decimal.RequireFromString("1500")) {
			t.Errorf("Expected cost unchanged at 1500, got %s", holding.TotalCost)
		}
	})
}

// TestHoldingStore_RemoveHolding tests atomic removal and the fresh basis
// on re-add.
func TestHoldingStore_RemoveHolding(t *testing.T) {
	t.Run("removes holding and cascades to lots", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)

		if err := s.AddLot("Apple Inc.", testLot("AAPL", 10, "150")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		if err := s.RemoveHolding("AAPL"); err != nil {
			t.Fatalf("RemoveHolding() returned unexpected error: %v", err)
		}

		if _, err := s.GetHolding("AAPL"); !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected holding-not-found after removal, got %v", err)
		}

		var lots int
		if err := db.QueryRow(`SELECT COUNT(*) FROM lot WHERE ticker = 'AAPL'`).Scan(&lots); err != nil {
			t.Fatalf("Failed to count lots: %v", err)
		}
		if lots != 0 {
			t.Errorf("Expected lots cascade-deleted, found %d", lots)
		}
	})

	t.Run("unknown ticker reports not found", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.RemoveHolding("AAPL"); !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected holding-not-found, got %v", err)
		}
	})

	t.Run("re-add starts a fresh basis", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.AddLot("Apple Inc.", testLot("AAPL", 10, "150")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}
		if err := s.RemoveHolding("AAPL"); err != nil {
			t.Fatalf("RemoveHolding() failed: %v", err)
		}
		if err := s.AddLot("Apple Inc.", testLot("AAPL", 2, "200")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		holding, err := s.GetHolding("AAPL")
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if holding.Quantity != 2 {
			t.Errorf("Expected fresh quantity 2, got %d", holding.Quantity)
		}
		if !holding.TotalCost.Equal(decimal.RequireFromString("400")) {
			t.Errorf("Expected fresh cost 400, got %s", holding.TotalCost)
		}
	})
}

// TestHoldingStore_GetPortfolio tests portfolio retrieval.
func TestHoldingStore_GetPortfolio(t *testing.T) {
	t.Run("empty store yields an empty portfolio", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		portfolio, err := s.GetPortfolio()
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		if len(portfolio) != 0 {
			t.Errorf("Expected empty portfolio, got %d holdings", len(portfolio))
		}
	})

	t.Run("holdings keyed by ticker with lots attached", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)

		if err := s.AddLot("Apple Inc.", testLot("AAPL", 10, "150")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}
		if err := s.AddLot("Microsoft", testLot("MSFT", 5, "400")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}

		portfolio, err := s.GetPortfolio()
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		if len(portfolio) != 2 {
			t.Fatalf("Expected 2 holdings, got %d", len(portfolio))
		}
		if len(portfolio["AAPL"].Lots) != 1 || len(portfolio["MSFT"].Lots) != 1 {
			t.Error("Expected each holding to carry its lots")
		}
	})
}

// TestHoldingStore_Tickers tests the sorted ticker listing.
func TestHoldingStore_Tickers(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)

	for _, ticker := range []string{"MSFT", "AAPL", "GOOG"} {
		if err := s.AddLot(ticker, testLot(ticker, 1, "100")); err != nil {
			t.Fatalf("AddLot() failed: %v", err)
		}
	}

	tickers, err := s.Tickers()
	if err != nil {
		t.Fatalf("Tickers() returned unexpected error: %v", err)
	}

	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(tickers) != len(want) {
		t.Fatalf("Expected %d tickers, got %d", len(want), len(tickers))
	}
	for i, ticker := range want {
		if tickers[i] != ticker {
			t.Errorf("Expected ticker %d to be %s, got %s", i, ticker, tickers[i])
		}
	}
}

// TestHealthCheck verifies connectivity probing against a live connection.
func TestHealthCheck(t *testing.T) {
	_, db := testutil.SetupTestStore(t)

	if err := store.HealthCheck(db); err != nil {
		t.Errorf("HealthCheck() returned unexpected error: %v", err)
	}
}

// Package store persists the portfolio mapping in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/model"
)

const dateLayout = "2006-01-02"

// HoldingStore provides data access for the holding and lot tables.
// Monetary columns are stored as decimal strings so cost-basis sums stay
// exact across any sequence of appends.
type HoldingStore struct {
	db *sql.DB
}

// NewHoldingStore creates a HoldingStore with the provided database connection.
func NewHoldingStore(db *sql.DB) *HoldingStore {
	return &HoldingStore{db: db}
}

// GetPortfolio retrieves all holdings keyed by ticker, each with its lots
// in append order.
func (s *HoldingStore) GetPortfolio() (model.Portfolio, error) {
	rows, err := s.db.Query(`
          SELECT ticker, name, quantity, total_cost
          FROM holding
          ORDER BY ticker
      `)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	portfolio := model.Portfolio{}

	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		portfolio[holding.Ticker] = holding
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	for ticker, holding := range portfolio {
		lots, err := s.getLots(ticker)
		if err != nil {
			return nil, err
		}
		holding.Lots = lots
		portfolio[ticker] = holding
	}

	return portfolio, nil
}

// GetHolding retrieves a single holding with its lots.
func (s *HoldingStore) GetHolding(ticker string) (model.Holding, error) {
	row := s.db.QueryRow(`
          SELECT ticker, name, quantity, total_cost
          FROM holding
          WHERE ticker = ?
      `, ticker)

	holding, err := scanHolding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, err
	}

	holding.Lots, err = s.getLots(ticker)
	if err != nil {
		return model.Holding{}, err
	}
	return holding, nil
}

// Tickers returns the tickers of all held positions in sorted order.
func (s *HoldingStore) Tickers() ([]string, error) {
	rows, err := s.db.Query(`SELECT ticker FROM holding ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// AddLot appends a lot and updates the owning holding's aggregates in one
// transaction. The holding is created on the first lot for its ticker.
// There is no partial commit: either the lot row and the aggregate update
// both land, or neither does.
func (s *HoldingStore) AddLot(name string, lot model.Lot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var currentCost string
	err = tx.QueryRow(`SELECT total_cost FROM holding WHERE ticker = ?`, lot.Ticker).Scan(&currentCost)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`
              INSERT INTO holding (ticker, name, quantity, total_cost)
              VALUES (?, ?, ?, ?)
          `, lot.Ticker, name, lot.Quantity, lot.Total().String())
		if err != nil {
			return fmt.Errorf("failed to insert holding: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query holding: %w", err)
	default:
		cost, err := decimal.NewFromString(currentCost)
		if err != nil {
			return fmt.Errorf("corrupt total_cost for %s: %w", lot.Ticker, err)
		}
		_, err = tx.Exec(`
              UPDATE holding
              SET name = ?, quantity = quantity + ?, total_cost = ?
              WHERE ticker = ?
          `, name, lot.Quantity, cost.Add(lot.Total()).String(), lot.Ticker)
		if err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
	}

	_, err = tx.Exec(`
          INSERT INTO lot (id, ticker, quantity, price, purchase_date)
          VALUES (?, ?, ?, ?, ?)
      `, lot.ID, lot.Ticker, lot.Quantity, lot.Price.String(), lot.PurchaseDate.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to insert lot: %w", err)
	}

	return tx.Commit()
}

// RemoveHolding deletes the holding and all its lots atomically.
// Re-adding the same ticker afterwards starts a fresh cost basis.
func (s *HoldingStore) RemoveHolding(ticker string) error {
	result, err := s.db.Exec(`DELETE FROM holding WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}

// getLots retrieves the lots of one holding in append order.
func (s *HoldingStore) getLots(ticker string) ([]model.Lot, error) {
	rows, err := s.db.Query(`
          SELECT id, ticker, quantity, price, purchase_date
          FROM lot
          WHERE ticker = ?
          ORDER BY created_at, id
      `, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query lot table: %w", err)
	}
	defer rows.Close()

	lots := []model.Lot{}
	for rows.Next() {
		var (
			lot      model.Lot
			price    string
			purchase string
		)
		if err := rows.Scan(&lot.ID, &lot.Ticker, &lot.Quantity, &price, &purchase); err != nil {
			return nil, fmt.Errorf("failed to scan lot table results: %w", err)
		}
		lot.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("corrupt price for lot %s: %w", lot.ID, err)
		}
		lot.PurchaseDate, err = time.Parse(dateLayout, purchase)
		if err != nil {
			return nil, fmt.Errorf("corrupt purchase_date for lot %s: %w", lot.ID, err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (model.Holding, error) {
	var (
		holding model.Holding
		cost    string
	)
	err := row.Scan(&holding.Ticker, &holding.Name, &holding.Quantity, &cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, err
		}
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}
	holding.TotalCost, err = decimal.NewFromString(cost)
	if err != nil {
		return model.Holding{}, fmt.Errorf("corrupt total_cost for %s: %w", holding.Ticker, err)
	}
	return holding, nil
}

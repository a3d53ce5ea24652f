// Package testutil provides shared helpers for store, service, and
// handler tests.
package testutil

import (
	"database/sql"
	"testing"

	"portfolio-tracker/internal/store"
)

// SetupTestStore opens an in-memory store with migrations applied.
// The database is closed automatically when the test completes.
func SetupTestStore(t *testing.T) (*store.HoldingStore, *sql.DB) {
	t.Helper()

	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return store.NewHoldingStore(db), db
}

package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates a fresh in-memory SQLite database with the slots table
// in place. It is closed when the test ends.
func NewTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := Open(":memory:")
	if err != nil {
		tb.Fatalf("opening test database: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		tb.Fatalf("creating slots table: %v", err)
	}
	return db
}

// SlotValue returns the raw stored value of a slot, bypassing any slot
// implementation. It fails the test when the slot has no row.
func SlotValue(tb testing.TB, db *sql.DB, key string) string {
	tb.Helper()

	var value string
	if err := db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value); err != nil {
		tb.Fatalf("reading slot %q: %v", key, err)
	}
	return value
}

package db

import (
	"database/sql"
	"fmt"
)

// schema holds one row per storage slot. Each value is a whole serialized
// collection and is only ever replaced, never patched.
const schema = `
CREATE TABLE IF NOT EXISTS slots (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

package slot

import (
	"context"
	"database/sql"
	"fmt"
)

// SQL keeps the slot as one row of the slots table.
type SQL struct {
	db  *sql.DB
	key string
}

// NewSQL returns a slot stored under key in db. The slots table must exist
// (see db.EnsureSchema).
func NewSQL(db *sql.DB, key string) *SQL {
	return &SQL{db: db, key: key}
}

// Read returns the stored value, or nil if the row does not exist.
func (s *SQL) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE key = ?`, s.key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}
	return []byte(value), nil
}

// Write replaces the stored value with a single upsert.
func (s *SQL) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}
	return nil
}

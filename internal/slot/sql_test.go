package slot

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSQL_Read(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer database.Close()

	s := NewSQL(database, "items")
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM slots WHERE key = ?")).
			WithArgs("items").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

		data, err := s.Read(ctx)

		assert.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("no row", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM slots WHERE key = ?")).
			WithArgs("items").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		data, err := s.Read(ctx)

		assert.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM slots WHERE key = ?")).
			WithArgs("items").
			WillReturnError(errors.New("disk I/O error"))

		data, err := s.Read(ctx)

		assert.Nil(t, data)
		assert.ErrorContains(t, err, `reading slot "items": disk I/O error`)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Write(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer database.Close()

	s := NewSQL(database, "items")
	ctx := context.Background()

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO slots (.+) ON CONFLICT").
			WithArgs("items", `[{"id":"a"}]`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Write(ctx, []byte(`[{"id":"a"}]`)))
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO slots").
			WithArgs("items", `[]`).
			WillReturnError(errors.New("database is locked"))

		err := s.Write(ctx, []byte(`[]`))
		assert.ErrorContains(t, err, "database is locked")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type result struct {
	n   int64
	err error
}

func (r result) LastInsertId() (int64, error) { return 0, nil }
func (r result) RowsAffected() (int64, error) { return r.n, r.err }

var _ sql.Result = result{}

func TestDeleted(t *testing.T) {
	require.NoError(t, deleted(result{n: 1}))
	require.ErrorIs(t, deleted(result{}), ErrNotFound)

	boom := errors.New("driver gone")
	err := deleted(result{err: boom})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestWrapDBError(t *testing.T) {
	require.NoError(t, wrapDBError("select", nil))
	require.ErrorIs(t, wrapDBError("select", sql.ErrNoRows), ErrNotFound)

	tests := []struct {
		name   string
		err    error
		unique bool
	}{
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: t.a, t.b"), unique: true},
		{name: "postgres", err: errors.New(`ERROR: duplicate key value violates unique constraint "t_pkey" (SQLSTATE 23505)`), unique: true},
		{name: "mysql", err: errors.New("Error 1062 (23000): Duplicate entry"), unique: true},
		{name: "wrapped", err: fmt.Errorf("exec: %w", errors.New("UNIQUE constraint failed: t.a")), unique: true},
		{name: "not null", err: errors.New("NOT NULL constraint failed: t.a")},
		{name: "other", err: errors.New("no such table: t")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapDBError("insert", tt.err)
			require.Equal(t, tt.unique, errors.Is(err, ErrUniqueViolation))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUniqueViolationCarriesDriverError(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	_, err := m.Create(ctx, a.ID, "de", map[string]any{"title": "Hallo"})
	require.NoError(t, err)
	_, err = m.Create(ctx, a.ID, "de", map[string]any{"title": "Servus"})
	require.ErrorIs(t, err, ErrUniqueViolation)

	var serr *sqlite.Error
	require.ErrorAs(t, err, &serr)
	require.Equal(t, int(sqlite3.SQLITE_CONSTRAINT_UNIQUE), serr.Code())
}

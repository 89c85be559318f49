package translation

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when an exact lookup matches no row.
	ErrNotFound = errors.New("translation not found")
	// ErrMultipleResults is returned when an exact lookup matches more than one row.
	ErrMultipleResults = errors.New("multiple translations returned")
	// ErrUniqueViolation is returned when a write conflicts with a unique constraint.
	ErrUniqueViolation = errors.New("translation unique constraint violated")
	// ErrUnsupportedLanguage is returned for writes in a non-translatable language.
	ErrUnsupportedLanguage = errors.New("unsupported translation language")
	// ErrUnknownField is returned for writes naming a column that is not translated.
	ErrUnknownField = errors.New("unknown translation field")
)

// wrapDBError maps storage errors onto the package sentinels.
func wrapDBError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrUniqueViolation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// isUniqueViolation recognizes constraint errors by SQLite result code, then
// by the messages of the SQLite, PostgreSQL and MySQL drivers.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Error 1062")
}

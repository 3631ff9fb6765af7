package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
)

// storageErr wraps a driver error with op context and, where the message
// identifies it, the matching domain error kind. The driver error stays in
// the chain so callers can still inspect it.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if kind := classify(err); kind != nil {
		return fmt.Errorf("%s: %w: %w", op, kind, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func classify(err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) || errors.Is(err, domain.ErrSchemaMismatch) ||
		errors.Is(err, domain.ErrDuplicateKey) {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) || errors.Is(err, driver.ErrBadConn) {
		return domain.ErrStorageUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed"),
		strings.Contains(msg, "primary key must be unique"):
		return domain.ErrDuplicateKey
	case strings.Contains(msg, "no such column"),
		strings.Contains(msg, "has no column named"):
		return domain.ErrSchemaMismatch
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "disk i/o error"),
		strings.Contains(msg, "readonly database"),
		strings.Contains(msg, "database disk image is malformed"),
		strings.Contains(msg, "sql: database is closed"):
		return domain.ErrStorageUnavailable
	}
	return nil
}

// isMissingTable reports whether err means the table was never created.
// Reads treat that as an empty, uninitialized store.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no such table")
}

// textOrEmpty converts a nullable TEXT column.
func textOrEmpty(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// realOrZero converts a nullable REAL column; absent numbers read as 0.
func realOrZero(f sql.NullFloat64) float64 {
	if !f.Valid {
		return 0
	}
	return f.Float64
}

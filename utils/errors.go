package utils

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// StorageError carries an HTTP status plus a client-safe message for a
// persistence failure; the raw error is only ever logged server-side.
type StorageError struct {
	Status  int
	Message string
}

// MapStorageError classifies persistence-layer failures. The deployment model
// runs against an external managed database, so unreachable/timeout and
// schema-drift conditions get messages that hint at the remediation.
func MapStorageError(err error) StorageError {
	if errors.Is(err, context.DeadlineExceeded) {
		return StorageError{Status: 504, Message: "Database request timed out. Check connection pooling."}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return StorageError{Status: 409, Message: "A record with that unique value already exists."}
		case pgErr.Code == "42P01" || pgErr.Code == "42703":
			return StorageError{Status: 500, Message: "Database schema is out of sync. Run the schema migrations on the production DB."}
		}
	}

	if pgconn.Timeout(err) {
		return StorageError{Status: 504, Message: "Database request timed out. Check connection pooling."}
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "failed to connect") {
		return StorageError{Status: 503, Message: "Database is unreachable from the server environment."}
	}

	return StorageError{Status: 500, Message: "Unexpected server error."}
}

// IsNotFound reports whether a query returned no rows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a duplicate-key conflict (email, SKU, slug).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

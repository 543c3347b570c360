package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapStorageError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deadline exceeded", context.DeadlineExceeded, 504},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), 504},
		{"unique violation", &pgconn.PgError{Code: "23505"}, 409},
		{"missing table", &pgconn.PgError{Code: "42P01"}, 500},
		{"missing column", &pgconn.PgError{Code: "42703"}, 500},
		{"connection refused", errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"), 503},
		{"anything else", errors.New("boom"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapStorageError(tc.err)
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %d, want %d (message %q)", got.Status, tc.wantStatus, got.Message)
			}
			if got.Message == "" {
				t.Fatal("empty client message")
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Fatal("pgx.ErrNoRows should be a not-found")
	}
	if !IsNotFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Fatal("wrapped ErrNoRows should be a not-found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatal("arbitrary error is not a not-found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("23505 should be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is not a unique violation")
	}
}

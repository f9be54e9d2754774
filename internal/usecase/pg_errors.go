package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKeyError reports whether err is a Postgres unique violation.
// When hint is non-empty the constraint name must contain it, so callers
// can tell apart violations on tables with more than one unique index.
func isDuplicateKeyError(err error, hint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	if hint == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, hint)
}

// isForeignKeyError reports whether err is a Postgres foreign key violation
// on a constraint whose name contains hint.
func isForeignKeyError(err error, hint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23503" {
		return false
	}
	if hint == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, hint)
}

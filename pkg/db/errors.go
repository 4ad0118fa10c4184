package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to a constraint whose name contains match.
func IsUniqueViolation(err error, match string) bool {
	code, constraint := pgErrorCode(err)
	if code != pgUniqueViolation {
		return false
	}
	if match == "" {
		return true
	}
	return strings.Contains(constraint, match)
}

// IsSchemaDrift reports whether err indicates the connected database is
// missing a table or column the code expects, which means migrations have
// not been run against it.
func IsSchemaDrift(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgUndefinedTable || code == pgUndefinedColumn
}

func pgErrorCode(err error) (code, constraint string) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the handlers care about.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
	codeCheckViolation  = "23514"
)

// SchemaOutOfDate reports whether err is a missing-table or missing-column
// error, which means the running schema does not match the models and the
// process needs a restart to re-run migrations.
func SchemaOutOfDate(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUndefinedTable || pgErr.Code == codeUndefinedColumn
}

// CheckViolation reports whether err is a check-constraint violation, the
// database-level backstop for the inventory and amount invariants.
func CheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeCheckViolation
}

package dbx

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique constraint
// failing on either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

// Translate maps a unique violation onto common.ErrorAlreadyExists, keeping
// the driver error in the chain. Other errors are returned as is.
func Translate(err error) error {
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) || !IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorAlreadyExists, err)
}

// Package dbx holds the storage plumbing shared by the record repositories:
// the DBTX handle satisfied by both *sql.DB and *sql.Tx, the transaction
// runner used by the services, placeholder rebinding per SQL dialect and the
// mapping of driver errors onto the sentinels of internal/common.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/logging"
)

// DBTX is the subset of database/sql the repositories use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. It commits when fn returns nil
// and rolls back otherwise; a panic rolls back and is re-raised. A failed
// rollback is logged through logger. The returned error has been through
// Translate, so a unique violation inside fn matches common.ErrorAlreadyExists.
//
//	err := dbx.WithTx(ctx, db, logger, func(ctx context.Context, tx dbx.DBTX) error {
//	    return repomanager.Customers(tx).UpdateStatus(ctx, id, status, nil, nil)
//	})
func WithTx(ctx context.Context, db *sql.DB, logger logging.Logger, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx, logger)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx, logger)
			err = Translate(err)
			return
		}
		if err = tx.Commit(); err != nil {
			err = Translate(fmt.Errorf("commit tx: %w", err))
		}
	}()

	return fn(ctx, tx)
}

func rollback(ctx context.Context, tx *sql.Tx, logger logging.Logger) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Warn(ctx, "transaction rollback failed", "error", err)
	}
}

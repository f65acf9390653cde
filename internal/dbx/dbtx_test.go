package dbx

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS parcels (id INTEGER PRIMARY KEY, code TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM parcels`)
	require.NoError(t, err)
	return db
}

func countParcels(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM parcels`).Scan(&n))
	return n
}

func insertParcel(code string) func(ctx context.Context, tx DBTX) error {
	return func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO parcels(code) VALUES (?)`, code)
		return err
	}
}

func TestWithTx_Commits(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, logging.Discard(), insertParcel("AKB587"))
	require.NoError(t, err)
	assert.Equal(t, 1, countParcels(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, logging.Discard(), func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertParcel("AKB587")(ctx, tx))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countParcels(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		require.Equal(t, "kaput", recover())
		assert.Equal(t, 0, countParcels(t, db))
	}()

	_ = WithTx(context.Background(), db, logging.Discard(), func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertParcel("AKB587")(ctx, tx))
		panic("kaput")
	})
}

func TestWithTx_DuplicateIsAlreadyExists(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, WithTx(ctx, db, logging.Discard(), insertParcel("AKB587")))

	err := WithTx(ctx, db, logging.Discard(), insertParcel("AKB587"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.True(t, IsUniqueViolation(err), "driver error stays in the chain")
	assert.Equal(t, 1, countParcels(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, logging.Discard(), func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestWithTx_LogsRollbackFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	var buf bytes.Buffer
	boom := errors.New("boom")
	err = WithTx(context.Background(), db, logging.New(&buf, "debug", "text"), func(ctx context.Context, tx DBTX) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "transaction rollback failed")
	assert.Contains(t, buf.String(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	err = WithTx(context.Background(), db, logging.Discard(), func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit tx")
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

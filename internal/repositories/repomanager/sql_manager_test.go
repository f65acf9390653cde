package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	for _, d := range []dbx.Dialect{dbx.DialectSQLite, dbx.DialectPostgres} {
		var m RepositoryManager = NewSQLRepositoryManager(d)
		assert.NotNil(t, m.Customers(db))
		assert.NotNil(t, m.Shipments(db))
		assert.NotNil(t, m.Feedbacks(db))
		assert.NotNil(t, m.Verifications(db))
	}
}

func TestPostgresBinding_RewritesPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE\s+channel_id\s*=\s*\$1\s+AND\s+message_id\s*=\s*\$2`).
		WithArgs(int64(-1), 5).
		WillReturnError(sql.ErrNoRows)

	m := NewSQLRepositoryManager(dbx.DialectPostgres)
	_, err = m.Verifications(db).GetByMessage(context.Background(), -1, 5)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, NewSQLRepositoryManager(dbx.DialectPostgres).RunMigrations(context.Background(), db))
	assert.Equal(t, migrations.PostgresDir, gotDir)

	require.NoError(t, NewSQLRepositoryManager(dbx.DialectSQLite).RunMigrations(context.Background(), db))
	assert.Equal(t, migrations.SQLiteDir, gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewSQLRepositoryManager(dbx.DialectSQLite).RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestOpen_SQLiteAppliesSchema(t *testing.T) {
	ctx := context.Background()
	db, m, err := Open(ctx, dbx.DialectSQLite, "file:repomanager_open?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, dbx.DialectSQLite, m.Dialect())

	n, err := m.Shipments(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	counts, err := m.Customers(db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total())
}

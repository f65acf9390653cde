package dbx

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{name: "sqlite untouched", dialect: DialectSQLite, in: "SELECT 1 WHERE a = ? AND b = ?", want: "SELECT 1 WHERE a = ? AND b = ?"},
		{name: "postgres numbered", dialect: DialectPostgres, in: "UPDATE t SET a = ? WHERE id = ?", want: "UPDATE t SET a = $1 WHERE id = $2"},
		{name: "literal kept", dialect: DialectPostgres, in: "SELECT '?' , x FROM t WHERE y = ?", want: "SELECT '?' , x FROM t WHERE y = $1"},
		{name: "no placeholders", dialect: DialectPostgres, in: "DELETE FROM shipments", want: "DELETE FROM shipments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.dialect, tt.in))
		})
	}
}

func TestDialectNames(t *testing.T) {
	assert.Equal(t, "pgx", DialectPostgres.DriverName())
	assert.Equal(t, "sqlite", DialectSQLite.DriverName())
	assert.Equal(t, "pgx", DialectPostgres.GooseDialect())
	assert.Equal(t, "sqlite3", DialectSQLite.GooseDialect())
}

func TestBind_PostgresRewritesQueries(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE customers SET language = $1 WHERE id = $2").
		WithArgs("ru", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM customers WHERE client_code = $1").
		WithArgs("AKB587").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	bound := Bind(db, DialectPostgres)
	ctx := context.Background()

	_, err = bound.ExecContext(ctx, "UPDATE customers SET language = ? WHERE id = ?", "ru", int64(7))
	require.NoError(t, err)

	var id int64
	require.NoError(t, bound.QueryRowContext(ctx, "SELECT id FROM customers WHERE client_code = ?", "AKB587").Scan(&id))
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBind_SQLiteReturnsSameHandle(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, db, Bind(db, DialectSQLite))
}

package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS uniq (code TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM uniq`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO uniq(code) VALUES ('AKB001')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO uniq(code) VALUES ('AKB001')`)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", err)))
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestTranslate(t *testing.T) {
	dup := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})

	assert.Nil(t, Translate(nil))
	assert.ErrorIs(t, Translate(dup), common.ErrorAlreadyExists)
	assert.ErrorIs(t, Translate(dup), dup)
	assert.Same(t, common.ErrorAlreadyExists, Translate(common.ErrorAlreadyExists))

	other := errors.New("disk full")
	assert.Same(t, other, Translate(other))
}

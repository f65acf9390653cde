package feedbacks

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate_WithoutCustomer(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, time.May, 3, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+feedbacks.*RETURNING\s+id$`).
		WithArgs(nil, int64(1001), "where is my parcel?", at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	got, err := repo.Create(context.Background(), &models.Feedback{TelegramID: 1001, Message: "where is my parcel?", CreatedAt: at})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, time.May, 3, 12, 0, 0, 0, time.UTC)
	q := `(?s)^SELECT\s+id,\s*customer_id,.*FROM\s+feedbacks\s+WHERE\s+id\s*=\s*\?$`

	mock.ExpectQuery(q).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "telegram_id", "message", "reply", "replied_at", "created_at"}).
			AddRow(int64(3), int64(5), int64(1001), "hello", "hi", at, at))
	mock.ExpectQuery(q).WithArgs(int64(4)).WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, int64(5), *got.CustomerID)
	require.NotNil(t, got.Reply)
	assert.Equal(t, "hi", *got.Reply)

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetReply_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE\s+feedbacks\s+SET\s+reply`).
		WithArgs("thanks", sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetReply(context.Background(), 9, "thanks", time.Now())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

package shipments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestInsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+shipments\s*\(tracking_code,.*created_at\)\s*VALUES`).
		WithArgs("YT123", "Shoes", "P-1", 2.5, 3, "CA-881", "AKB587", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), &models.Shipment{
		TrackingCode: "YT123", ShippingName: "Shoes", PackageNumber: "P-1",
		Weight: 2.5, Quantity: 3, Flight: "CA-881", CustomerCode: "AKB587", CreatedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTrackingCode_TrimsInput(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`^SELECT\s+id,.*FROM\s+shipments\s+WHERE\s+UPPER\(tracking_code\)\s*=\s*UPPER\(\?\)`).
		WithArgs("yt123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tracking_code", "shipping_name", "package_number",
			"weight", "quantity", "flight", "customer_code", "created_at"}).
			AddRow(int64(1), "YT123", "Shoes", "P-1", 2.5, 3, "CA-881", "AKB587", at))

	got, err := repo.GetByTrackingCode(context.Background(), "  yt123 ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AKB587", got[0].CustomerCode)
	assert.Equal(t, 3, got[0].Quantity)
}

func TestDeleteAll_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+shipments$`).WillReturnError(errors.New("locked"))

	_, err := repo.DeleteAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

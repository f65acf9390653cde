package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/config"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

// newStore opens a private in-memory SQLite database with the schema applied.
func newStore(t *testing.T) (*sql.DB, *repomanager.SQLRepositoryManager) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, m, err := repomanager.Open(context.Background(), dbx.DialectSQLite, "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, m
}

func newCustomerService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) *CustomerService {
	t.Helper()
	cfg := &config.Config{ClientCodePrefix: "AKB", ClientCodeStart: 587}
	s := NewCustomerService(db, m, cfg, logging.Discard())
	s.now = func() time.Time { return fixedNow }
	return s
}

func applicant(telegramID int64) *models.Customer {
	return &models.Customer{
		TelegramID:     &telegramID,
		Username:       "tester",
		FullName:       "Aliyev Vali",
		Phone:          "+998901234567",
		DocumentNumber: "AA1234567",
		BirthDate:      "01.02.1990",
		Pinfl:          "31234567890123",
		Address:        "Tashkent, Chilonzor 1",
		DocumentType:   models.DocumentBiometric,
		FrontImageID:   "front",
		BackImageID:    "back",
		Language:       models.LanguageRu,
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextClientCode(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		start int
		want  string
	}{
		{"empty uses start", nil, 587, "AKB587"},
		{"max plus one", []string{"AKB580", "AKB586"}, 1, "AKB587"},
		{"start wins over lower codes", []string{"AKB010"}, 587, "AKB587"},
		{"case-insensitive prefix", []string{"akb600"}, 587, "AKB601"},
		{"unparsable skipped", []string{"AKBX12", "AKB", "AKB590"}, 587, "AKB591"},
		{"zero padded", nil, 5, "AKB005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextClientCode(tt.codes, "AKB", tt.start))
		})
	}
}

func TestRegister_AssignsSequentialCodes(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	first, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)
	second, err := s.Register(ctx, applicant(1002))
	require.NoError(t, err)

	assert.Equal(t, "AKB587", first.ClientCode)
	assert.Equal(t, "AKB588", second.ClientCode)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.True(t, first.IsActive)
	assert.Equal(t, fixedNow, first.RegisteredAt)

	next, err := s.GenerateClientCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AKB589", next)
}

func TestRegister_ActiveRecordBlocksSecondRegistration(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	_, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)

	_, err = s.Register(ctx, applicant(1001))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLifecycle_RejectReregisterApprove(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	first, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)

	rejected, changed, err := s.Reject(ctx, first.ID, "blurry photo")
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "blurry photo", *rejected.RejectionReason)

	second, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)
	assert.NotEqual(t, first.ClientCode, second.ClientCode)

	approved, changed, err := s.Approve(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := s.GetByTelegramID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, stored.ID)
	assert.Equal(t, models.StatusApproved, stored.Status)
	assert.NotNil(t, stored.VerifiedAt)
	assert.Nil(t, stored.RejectionReason)

	old, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)
}

func TestDecide_Transitions(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	a, err := s.Register(ctx, applicant(1))
	require.NoError(t, err)
	b, err := s.Register(ctx, applicant(2))
	require.NoError(t, err)

	_, _, err = s.Reject(ctx, a.ID, "   ")
	assert.ErrorIs(t, err, common.ErrEmptyReason)

	_, _, err = s.Approve(ctx, a.ID)
	require.NoError(t, err)
	_, changed, err := s.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, changed, "re-approve is a no-op")

	_, _, err = s.Reject(ctx, a.ID, "late")
	assert.ErrorIs(t, err, common.ErrInvalidTransition)

	_, _, err = s.Reject(ctx, b.ID, "bad pinfl")
	require.NoError(t, err)
	_, changed, err = s.Reject(ctx, b.ID, "again")
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = s.Approve(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)

	_, _, err = s.Approve(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerifyLogin_AttachesChatUser(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	imported := &models.Customer{
		ClientCode: "AKB100", FullName: "Karimova Dilnoza", Phone: "+998901234567",
		DocumentNumber: "AB7654321", Pinfl: "41234567890123",
	}
	created, err := s.UpsertImported(ctx, imported)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = s.VerifyLogin(ctx, "akb100", "99 999-99-99", 5005, "dilnoza")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.VerifyLogin(ctx, "AKB100", "", 5005, "dilnoza")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	c, err := s.VerifyLogin(ctx, " akb100 ", "+998 90 123-45-67", 5005, "dilnoza")
	require.NoError(t, err)
	require.NotNil(t, c.TelegramID)
	assert.Equal(t, int64(5005), *c.TelegramID)
	require.NotNil(t, c.LastLoginAt)

	byChat, err := s.GetByTelegramID(ctx, 5005)
	require.NoError(t, err)
	assert.Equal(t, "AKB100", byChat.ClientCode)
	assert.Equal(t, models.StatusApproved, byChat.Status)
}

func TestUpsertImported_UpdatesByPinfl(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	reg, err := s.Register(ctx, applicant(77))
	require.NoError(t, err)

	created, err := s.UpsertImported(ctx, &models.Customer{
		ClientCode: "AKB999", FullName: "Aliyev Vali Updated", Phone: "+998907777777",
		DocumentNumber: "AD1111111", BirthDate: "01.02.1990", Address: "Samarkand", Pinfl: reg.Pinfl,
	})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "Aliyev Vali Updated", got.FullName)
	assert.Equal(t, reg.ClientCode, got.ClientCode)

	counts, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Approved)
	assert.Equal(t, 1, counts.Total())
}

func TestUpsertImported_ReactivatedRecordReleasesChatUser(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	first, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)
	_, _, err = s.Reject(ctx, first.ID, "blurry photo")
	require.NoError(t, err)
	second, err := s.Register(ctx, applicant(1001))
	require.NoError(t, err)

	created, err := s.UpsertImported(ctx, &models.Customer{
		ClientCode: first.ClientCode, FullName: "Aliyev Vali", Phone: "+998901234567",
		DocumentNumber: "AA1234567", BirthDate: "01.02.1990", Address: "Tashkent", Pinfl: first.Pinfl,
	})
	require.NoError(t, err)
	assert.False(t, created)

	old, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, old.IsActive)
	assert.Equal(t, models.StatusApproved, old.Status)
	assert.Nil(t, old.TelegramID)

	current, err := s.GetByTelegramID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestSearchAndPreferences(t *testing.T) {
	db, m := newStore(t)
	s := newCustomerService(t, db, m)
	ctx := context.Background()

	c, err := s.Register(ctx, applicant(42))
	require.NoError(t, err)

	found, err := s.Search(ctx, "akb587")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Search(ctx, "90 123")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, s.SetLanguage(ctx, c.ID, models.LanguageUz))
	require.NoError(t, s.ConfirmAddress(ctx, c.ID))
	require.NoError(t, s.SetArchiveKeys(ctx, c.ID, "docs/f", "docs/b"))
	assert.ErrorIs(t, s.ConfirmAddress(ctx, 12345), common.ErrorNotFound)

	got, err := s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LanguageUz, got.Language)
	assert.True(t, got.AddressConfirmed)
	assert.Equal(t, "docs/f", got.FrontArchiveKey)

	_, _, err = s.Approve(ctx, c.ID)
	require.NoError(t, err)
	approved, err := s.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)

	n, err := s.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = s.GetByTelegramID(ctx, 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRegister_StorageFailureIsInternal(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+client_code\s+FROM\s+customers`).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := newCustomerService(t, db, repomanager.NewSQLRepositoryManager(dbx.DialectSQLite))
	c := applicant(1)
	c.TelegramID = nil

	_, err = s.Register(context.Background(), c)
	assert.ErrorIs(t, err, common.ErrorInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

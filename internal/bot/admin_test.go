package bot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/chat/chattest"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/importer"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const shipmentsCSV = "Shipment Tracking Code,Shipping Name,Package Number,Weight/KG,Quantity,Flight,Customer code\n" +
	"TRK1,Shoes,P-1,1.5,3,HY-501,AKB601\n" +
	"TRK2,Bags,P-2,2,1,HY-501,AKB602\n"

func upload(from int64, fileID, name string) chat.Update {
	u := private(from, "")
	u.Document = &chat.Document{FileID: fileID, FileName: name}
	return u
}

func workbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestAdmin_ButtonsNeedAdmin(t *testing.T) {
	h := newHarness(t)

	h.do(press(userID, i18n.IntentAdminStats))

	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgInvalidCommand), h.lastText(t, userID))
}

func TestAdmin_Stats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pending := h.pending(t, 2001, models.LanguageUz)
	h.approved(t, 2002, models.LanguageUz)
	_, err := h.shipments.ReplaceAll(ctx, []models.Shipment{{TrackingCode: "TRK1"}, {TrackingCode: "TRK2"}})
	require.NoError(t, err)
	_, err = h.verifications.Enqueue(ctx, pending.ID, verifyChan, 42)
	require.NoError(t, err)

	h.do(press(adminID, i18n.IntentAdminStats))

	m := h.last(t, adminID)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminStats, 2, 1, 1, 0, 2, 1), m.Text)
	assert.Equal(t, menu.Admin(models.LanguageUz), m.Markup)
}

func TestAdmin_Search(t *testing.T) {
	h := newHarness(t)
	c := h.approved(t, 2001, models.LanguageUz)

	h.do(press(adminID, i18n.IntentAdminSearch))
	assert.IsType(t, session.AdminSearchStep{}, h.session(t, adminID).Form)

	h.do(private(adminID, c.ClientCode))
	m := h.last(t, adminID)
	assert.Contains(t, m.Text, c.ClientCode)
	assert.Contains(t, m.Text, c.FullName)
	assert.Equal(t, menu.Admin(models.LanguageUz), m.Markup)
	assert.Nil(t, h.session(t, adminID).Form)

	h.do(press(adminID, i18n.IntentAdminSearch))
	h.do(private(adminID, "ZZZ000"))
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminSearchEmpty), h.lastText(t, adminID))
}

func TestAdmin_Track(t *testing.T) {
	h := newHarness(t)
	_, err := h.shipments.ReplaceAll(context.Background(), []models.Shipment{{TrackingCode: "TRK9", CustomerCode: "AKB601"}})
	require.NoError(t, err)

	h.do(press(adminID, i18n.IntentAdminTrack))
	h.do(private(adminID, "TRK9"))

	assert.Contains(t, h.lastText(t, adminID), "TRK9")
	assert.Nil(t, h.session(t, adminID).Form)
}

func TestAdmin_ClearAll(t *testing.T) {
	h := newHarness(t)
	h.pending(t, 2001, models.LanguageUz)
	h.approved(t, 2002, models.LanguageUz)

	h.do(press(adminID, i18n.IntentAdminClear))
	h.do(press(adminID, i18n.IntentNo))
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgOperationCancelled), h.lastText(t, adminID))

	counts, err := h.customers.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total())

	h.do(press(adminID, i18n.IntentAdminClear))
	h.do(press(adminID, i18n.IntentYes))
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminCleared, int64(2)), h.lastText(t, adminID))

	counts, err = h.customers.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Total())
}

func TestAdmin_CancelReturnsToPanel(t *testing.T) {
	h := newHarness(t)

	h.do(press(adminID, i18n.IntentAdminBroadcast))
	h.do(press(adminID, i18n.IntentCancel))

	m := h.last(t, adminID)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgOperationCancelled), m.Text)
	assert.Equal(t, menu.Admin(models.LanguageUz), m.Markup)
	assert.Nil(t, h.session(t, adminID).Form)
}

func TestAdmin_Broadcast(t *testing.T) {
	h := newHarness(t)
	h.approved(t, 2001, models.LanguageUz)
	h.approved(t, 2002, models.LanguageUz)
	h.pending(t, 2003, models.LanguageUz)
	h.rec.FailChats[2002] = true

	h.do(press(adminID, i18n.IntentAdminBroadcast))
	h.do(private(adminID, "Flight HY-501 has landed"))
	h.bot.Wait()

	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminBroadcastDone, 1, 1), h.lastText(t, adminID))
	assert.Equal(t, "Flight HY-501 has landed", h.lastText(t, 2001))
	assert.Empty(t, h.rec.To(2003))
}

func TestAdmin_ShipmentUpload(t *testing.T) {
	h := newHarness(t)
	h.rec.Files["file-1"] = []byte(shipmentsCSV)

	h.do(press(adminID, i18n.IntentAdminShipments))
	h.do(upload(adminID, "file-1", "cargo.CSV"))
	assert.Nil(t, h.session(t, adminID).Form)
	h.bot.Wait()

	msgs := h.rec.To(adminID)
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminImportStarted), msgs[len(msgs)-2].Text)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminShipmentsImported, 2), msgs[len(msgs)-1].Text)

	n, err := h.shipments.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, float64(2), testutil.ToFloat64(h.metrics.ImportRows.WithLabelValues("shipments", "ok")))

	uploads, err := os.ReadDir(filepath.Join(h.cfg.TempDir, uploadsDir))
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "shipments_20250615_100000.csv", uploads[0].Name())
}

func TestAdmin_UploadRejectsOtherFiles(t *testing.T) {
	h := newHarness(t)
	want := i18n.T(models.LanguageUz, i18n.MsgAdminWrongFile, ".xlsx, .xls, .csv")

	h.do(press(adminID, i18n.IntentAdminShipments))

	h.do(upload(adminID, "file-1", "cargo.pdf"))
	assert.Equal(t, want, h.lastText(t, adminID))

	h.do(private(adminID, "here it is"))
	assert.Equal(t, want, h.lastText(t, adminID))
	assert.IsType(t, session.AdminShipmentsStep{}, h.session(t, adminID).Form)

	h.do(press(adminID, i18n.IntentAdminImport))
	assert.IsType(t, session.AdminShipmentsStep{}, h.session(t, adminID).Form, "admin buttons do not interrupt a form")
}

func TestAdmin_UploadMissingColumns(t *testing.T) {
	h := newHarness(t)
	h.rec.Files["file-1"] = []byte("Shipping Name,Weight/KG\nShoes,1\n")

	h.do(press(adminID, i18n.IntentAdminShipments))
	h.do(upload(adminID, "file-1", "cargo.csv"))
	h.bot.Wait()

	text := h.lastText(t, adminID)
	assert.Contains(t, text, "Shipment Tracking Code")
	assert.Contains(t, text, "Customer code")
}

func TestAdmin_UploadDownloadFailure(t *testing.T) {
	h := newHarness(t)

	h.do(press(adminID, i18n.IntentAdminShipments))
	h.do(upload(adminID, "missing", "cargo.csv"))
	h.bot.Wait()

	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgErrorGeneral), h.lastText(t, adminID))
	assert.Nil(t, h.session(t, adminID).Form)
}

func TestAdmin_CustomerImportSendsFailedRowsAndBackup(t *testing.T) {
	h := newHarness(t)
	dbFile := filepath.Join(t.TempDir(), "cargo.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite"), 0o600))
	h.cfg.DBDriver = "sqlite"
	h.cfg.DatabaseDSN = dbFile

	h.rec.Files["file-1"] = workbook(t, [][]string{
		importer.CustomerColumns,
		{"AKB601", "Aliyev Vali", "AA1234567", "01.02.1990", "Tashkent", "901234567", "31434567890123"},
		{"AKB602", "Karimova Aziza", "AB7654321", "04.03.1991", "Samarkand", "123", "31434567890124"},
	})

	h.do(press(adminID, i18n.IntentAdminImport))
	h.do(upload(adminID, "file-1", "clients.xlsx"))
	h.bot.Wait()

	assert.Contains(t, textsTo(h.rec.To(adminID)), i18n.T(models.LanguageUz, i18n.MsgAdminCustomersImported, 1, 1))

	var docs []chattest.Sent
	for _, m := range h.rec.To(adminID) {
		if m.Kind == chattest.KindDocument {
			docs = append(docs, m)
		}
	}
	require.Len(t, docs, 2)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminFailedRows), docs[0].Text)
	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminBackup), docs[1].Text)
	assert.Equal(t, "backup_20250615_100000.db", filepath.Base(docs[1].Path))
	for _, d := range docs {
		_, err := os.Stat(d.Path)
		assert.ErrorIs(t, err, os.ErrNotExist, "attachment %s left behind", d.Path)
	}

	c, err := h.customers.GetByClientCode(context.Background(), "AKB601")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, c.Status)
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.ImportRows.WithLabelValues("customers", "failed")))
}

func TestAdmin_CustomerUploadRejectsCSV(t *testing.T) {
	h := newHarness(t)

	h.do(press(adminID, i18n.IntentAdminImport))
	h.do(upload(adminID, "file-1", "clients.csv"))

	assert.Equal(t, i18n.T(models.LanguageUz, i18n.MsgAdminWrongFile, ".xlsx, .xls"), h.lastText(t, adminID))
}

func TestSqliteFile(t *testing.T) {
	h := newHarness(t)
	dbFile := filepath.Join(t.TempDir(), "cargo.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("x"), 0o600))

	tests := []struct {
		name   string
		driver string
		dsn    string
		ok     bool
	}{
		{"plain file", "sqlite", dbFile, true},
		{"uri", "sqlite", "file:" + dbFile, false},
		{"options", "sqlite", dbFile + "?_pragma=foreign_keys(1)", false},
		{"missing", "sqlite", filepath.Join(t.TempDir(), "none.db"), false},
		{"postgres", "postgres", "postgres://localhost/cargo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.cfg.DBDriver = tt.driver
			h.cfg.DatabaseDSN = tt.dsn
			_, ok := h.bot.sqliteFile()
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func textsTo(msgs []chattest.Sent) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

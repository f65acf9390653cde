package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/filex"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/importer"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
)

type uploadKind struct {
	name       string
	extensions []string
}

var (
	shipmentUpload = uploadKind{name: "shipments", extensions: []string{".xlsx", ".xls", ".csv"}}
	customerUpload = uploadKind{name: "customers", extensions: []string{".xlsx", ".xls"}}
)

const uploadsDir = "uploads"

// upload downloads the spreadsheet the admin sent and imports it in the
// background. The downloaded file is removed UploadCleanupDelay after the
// import started, whether it has finished or not.
func (b *Bot) upload(ctx context.Context, u chat.Update, s *session.Session, kind uploadKind) {
	lang := s.Lang()
	if u.Document == nil {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminWrongFile, strings.Join(kind.extensions, ", ")), menu.Cancel(lang))
		return
	}

	ext := strings.ToLower(filepath.Ext(u.Document.FileName))
	if !slices.Contains(kind.extensions, ext) {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminWrongFile, strings.Join(kind.extensions, ", ")), menu.Cancel(lang))
		return
	}

	s.Form = nil

	dir := filepath.Join(b.cfg.TempDir, uploadsDir)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		b.logger.Error(ctx, "upload dir not created", "dir", dir, "error", err)
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}
	path := filepath.Join(dir, filex.TimestampedName(kind.name, ext, b.now()))

	if err := b.messenger.DownloadFile(ctx, u.Document.FileID, path); err != nil {
		b.logger.Error(ctx, "upload not downloaded", "file", u.Document.FileName, "error", err)
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}

	b.adminPanel(ctx, u.ChatID, s, i18n.MsgAdminImportStarted)
	filex.RemoveAfter(path, common.UploadCleanupDelay, func(err error) {
		b.logger.Warn(context.Background(), "upload not removed", "path", path, "error", err)
	})

	adminChat := u.ChatID
	b.detach(ctx, func(ctx context.Context) {
		if kind.name == shipmentUpload.name {
			b.importShipments(ctx, adminChat, lang, path)
			return
		}
		b.importCustomers(ctx, adminChat, lang, path)
	})
}

func (b *Bot) importShipments(ctx context.Context, adminChat int64, lang models.Language, path string) {
	n, err := b.importer.ImportShipments(ctx, path)
	if err != nil {
		b.reply(ctx, adminChat, importError(lang, err), nil)
		return
	}
	b.metrics.AddImportRows("shipments", "ok", n)
	b.reply(ctx, adminChat, i18n.T(lang, i18n.MsgAdminShipmentsImported, n), nil)
}

// importCustomers reports the result, then sends the failed rows workbook
// and a copy of the SQLite database. Both attachments are removed after
// sending.
func (b *Bot) importCustomers(ctx context.Context, adminChat int64, lang models.Language, path string) {
	report, err := b.importer.ImportCustomers(ctx, path)
	if err != nil {
		b.reply(ctx, adminChat, importError(lang, err), nil)
		return
	}
	b.metrics.AddImportRows("customers", "ok", report.Imported())
	b.metrics.AddImportRows("customers", "failed", report.Failed())
	b.reply(ctx, adminChat, i18n.T(lang, i18n.MsgAdminCustomersImported, report.Imported(), report.Failed()), nil)

	if report.FailedFile != "" {
		b.sendAndRemove(ctx, adminChat, report.FailedFile, i18n.T(lang, i18n.MsgAdminFailedRows))
	}

	if db, ok := b.sqliteFile(); ok {
		backup := filepath.Join(b.cfg.TempDir, filex.TimestampedName("backup", filepath.Ext(db), b.now()))
		if err := filex.CopyFile(db, backup); err != nil {
			b.logger.Warn(ctx, "database backup not created", "error", err)
			return
		}
		b.sendAndRemove(ctx, adminChat, backup, i18n.T(lang, i18n.MsgAdminBackup))
	}
}

func (b *Bot) sendAndRemove(ctx context.Context, chatID int64, path, caption string) {
	if _, err := b.messenger.SendDocument(ctx, chatID, path, caption); err != nil {
		b.logger.Warn(ctx, "document not sent", "path", path, "error", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		b.logger.Warn(ctx, "document not removed", "path", path, "error", err)
	}
}

func importError(lang models.Language, err error) string {
	var missing *importer.MissingColumnsError
	if errors.As(err, &missing) {
		return i18n.T(lang, i18n.MsgAdminMissingColumns, strings.Join(missing.Columns, ", "))
	}
	return i18n.T(lang, i18n.MsgAdminImportFailed, err.Error())
}

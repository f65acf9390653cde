package bot

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/session"
)

func isAdminIntent(intent i18n.Intent) bool {
	switch intent {
	case i18n.IntentAdminStats, i18n.IntentAdminSearch, i18n.IntentAdminTrack,
		i18n.IntentAdminShipments, i18n.IntentAdminImport, i18n.IntentAdminBroadcast,
		i18n.IntentAdminClear:
		return true
	}
	return false
}

func (b *Bot) admin(ctx context.Context, u chat.Update, s *session.Session, intent i18n.Intent) {
	lang := s.Lang()

	switch intent {
	case i18n.IntentAdminStats:
		b.stats(ctx, u, s)
	case i18n.IntentAdminSearch:
		s.Form = session.AdminSearchStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminEnterSearch), menu.Cancel(lang))
	case i18n.IntentAdminTrack:
		s.Form = session.AdminTrackStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterTrackingCode), menu.Cancel(lang))
	case i18n.IntentAdminShipments:
		s.Form = session.AdminShipmentsStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminSendShipments), menu.Cancel(lang))
	case i18n.IntentAdminImport:
		s.Form = session.AdminCustomersStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminSendCustomers), menu.Cancel(lang))
	case i18n.IntentAdminBroadcast:
		s.Form = session.AdminBroadcastStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminEnterBroadcast), menu.Cancel(lang))
	case i18n.IntentAdminClear:
		s.Form = session.AdminClearStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminClearConfirm), menu.YesNo(lang))
	}
}

func (b *Bot) adminPanel(ctx context.Context, chatID int64, s *session.Session, key i18n.Key, args ...any) {
	b.reply(ctx, chatID, i18n.T(s.Lang(), key, args...), menu.Admin(s.Lang()))
}

func (b *Bot) adminForm(ctx context.Context, u chat.Update, s *session.Session) {
	if cancelled(u) {
		s.Form = nil
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgOperationCancelled)
		return
	}

	switch s.Form.(type) {
	case session.AdminSearchStep:
		b.search(ctx, u, s)
	case session.AdminTrackStep:
		code := strings.TrimSpace(u.Text)
		if code == "" {
			b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgEnterTrackingCode), menu.Cancel(s.Lang()))
			return
		}
		s.Form = nil
		b.track(ctx, u, s, code)
	case session.AdminShipmentsStep:
		b.upload(ctx, u, s, shipmentUpload)
	case session.AdminCustomersStep:
		b.upload(ctx, u, s, customerUpload)
	case session.AdminBroadcastStep:
		b.broadcast(ctx, u, s)
	case session.AdminClearStep:
		b.clear(ctx, u, s)
	}
}

func (b *Bot) stats(ctx context.Context, u chat.Update, s *session.Session) {
	counts, err := b.customers.Stats(ctx)
	if err != nil {
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}
	shipments, err := b.shipments.Count(ctx)
	if err != nil {
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}
	open, err := b.verifications.CountOpen(ctx)
	if err != nil {
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}
	b.adminPanel(ctx, u.ChatID, s, i18n.MsgAdminStats,
		counts.Total(), counts.Pending, counts.Approved, counts.Rejected, shipments, open)
}

func (b *Bot) search(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	query := strings.TrimSpace(u.Text)
	if query == "" {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAdminEnterSearch), menu.Cancel(lang))
		return
	}

	s.Form = nil
	list, err := b.customers.Search(ctx, query)
	if err != nil {
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
		return
	}
	if len(list) == 0 {
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgAdminSearchEmpty)
		return
	}
	for i, c := range list {
		text := i18n.T(lang, i18n.MsgAdminCustomerCard,
			c.ClientCode, c.FullName, c.Phone, c.DocumentNumber, c.Pinfl,
			i18n.StatusLabel(lang, c.Status), c.RegisteredAt.Format(displayLayout))
		var kb chat.Markup
		if i == len(list)-1 {
			kb = menu.Admin(lang)
		}
		b.reply(ctx, u.ChatID, text, kb)
	}
}

// clear deletes every customer after a yes.
func (b *Bot) clear(ctx context.Context, u chat.Update, s *session.Session) {
	intent, _ := i18n.IntentOf(u.Text)
	switch intent {
	case i18n.IntentYes:
		s.Form = nil
		n, err := b.customers.ClearAll(ctx)
		if err != nil {
			b.adminPanel(ctx, u.ChatID, s, i18n.MsgErrorGeneral)
			return
		}
		b.logger.Warn(ctx, "customers cleared by admin", "admin_id", u.UserID, "count", n)
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgAdminCleared, n)
	case i18n.IntentNo:
		s.Form = nil
		b.adminPanel(ctx, u.ChatID, s, i18n.MsgOperationCancelled)
	default:
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgUseButtons), menu.YesNo(s.Lang()))
	}
}

// broadcast sends the text to every approved customer in the background.
func (b *Bot) broadcast(ctx context.Context, u chat.Update, s *session.Session) {
	text := strings.TrimSpace(u.Text)
	if text == "" {
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgAdminEnterBroadcast), menu.Cancel(s.Lang()))
		return
	}

	s.Form = nil
	lang := s.Lang()
	adminChat := u.ChatID
	b.adminPanel(ctx, adminChat, s, i18n.MsgAdminBroadcastStarted)

	b.detach(ctx, func(ctx context.Context) {
		list, err := b.customers.ListApproved(ctx)
		if err != nil {
			b.reply(ctx, adminChat, i18n.T(lang, i18n.MsgErrorGeneral), nil)
			return
		}

		sent, failed := 0, 0
		for _, c := range list {
			if c.TelegramID == nil {
				continue
			}
			if _, err := b.messenger.SendText(ctx, *c.TelegramID, text, nil); err != nil {
				failed++
				b.logger.Debug(ctx, "broadcast message not delivered", "client_code", c.ClientCode, "error", err)
				continue
			}
			sent++
		}
		b.logger.Info(ctx, "broadcast finished", "sent", sent, "failed", failed)
		b.reply(ctx, adminChat, i18n.T(lang, i18n.MsgAdminBroadcastDone, sent, failed), nil)
	})
}

// detach runs fn after the update has been handled, on a context that the
// update's cancellation does not reach.
func (b *Bot) detach(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	b.background.Add(1)
	go func() {
		defer b.background.Done()
		fn(ctx)
	}()
}

// sqliteFile returns the database file when the store is a local SQLite
// file.
func (b *Bot) sqliteFile() (string, bool) {
	if b.cfg.DBDriver != "sqlite" {
		return "", false
	}
	path := b.cfg.DatabaseDSN
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "?") {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return filepath.Clean(path), true
}

package bot

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
)

const staffLang = models.LanguageUz

// submitFeedback stores the message and forwards it to the feedback channel
// with a reply button. The customer is told only when both succeeded.
func (b *Bot) submitFeedback(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	if cancelled(u) {
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgOperationCancelled), b.keyboard(ctx, s))
		return
	}

	message := strings.TrimSpace(u.Text)
	if message == "" {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterFeedback), menu.Cancel(lang))
		return
	}

	s.Form = nil
	c := b.customer(ctx, s)
	var customerID *int64
	if c != nil {
		customerID = &c.ID
	}

	fb, err := b.feedback.Save(ctx, customerID, u.UserID, message)
	if err != nil {
		b.generalError(ctx, u, s)
		return
	}

	if b.cfg.FeedbackGroupID != 0 {
		name, code, phone := "-", "-", "-"
		if c != nil {
			name, code, phone = c.FullName, c.ClientCode, c.Phone
		}
		text := i18n.T(staffLang, i18n.MsgStaffNewFeedback, name, code, phone, message)
		if _, err := b.messenger.SendText(ctx, b.cfg.FeedbackGroupID, text, menu.Reply(fb.ID)); err != nil {
			b.logger.Error(ctx, "feedback not forwarded", "feedback_id", fb.ID, "error", err)
			b.generalError(ctx, u, s)
			return
		}
	}

	b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgFeedbackSent), b.keyboard(ctx, s))
}

// startReply asks the staff member who pressed the reply button for the
// answer text.
func (b *Bot) startReply(ctx context.Context, u chat.Update, s *session.Session, feedbackID int64) {
	b.answer(ctx, u.Callback.ID)
	if _, err := b.feedback.Get(ctx, feedbackID); err != nil {
		b.reply(ctx, u.Callback.ChatID, i18n.T(staffLang, i18n.MsgStaffUnknownEntry), nil)
		return
	}
	s.Form = session.FeedbackReplyStep{FeedbackID: feedbackID}
	b.reply(ctx, u.Callback.ChatID, i18n.T(staffLang, i18n.MsgStaffEnterReply), nil)
}

// sendReply stores the staff answer and delivers it to the customer in the
// customer's language.
func (b *Bot) sendReply(ctx context.Context, u chat.Update, s *session.Session, form session.FeedbackReplyStep) {
	if cancelled(u) {
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgOperationCancelled), nil)
		return
	}

	reply := strings.TrimSpace(u.Text)
	if reply == "" {
		b.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgStaffEnterReply), nil)
		return
	}

	s.Form = nil
	fb, err := b.feedback.Reply(ctx, form.FeedbackID, reply)
	if err != nil {
		b.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgErrorGeneral), nil)
		return
	}

	lang := models.LanguageUz
	if fb.CustomerID != nil {
		if c, err := b.customers.GetByID(ctx, *fb.CustomerID); err == nil {
			lang = c.Language
		}
	}

	if _, err := b.messenger.SendText(ctx, fb.TelegramID, i18n.T(lang, i18n.MsgFeedbackReply, reply), nil); err != nil {
		b.logger.Warn(ctx, "feedback reply not delivered", "feedback_id", fb.ID, "error", err)
		b.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgStaffDeliveryError), nil)
		return
	}
	b.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgStaffReplySent), nil)
}

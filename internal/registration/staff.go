package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/notify"
	"github.com/dmitrijs2005/cargobot/internal/session"
)

// Decide handles an approve or reject button pressed under a verification
// message. The customer is looked up through the queue entry of the pressed
// message. Rejecting asks the staff member for a reason first; s is the
// staff member's session.
func (f *Flow) Decide(ctx context.Context, u chat.Update, s *session.Session) {
	cb := u.Callback
	action, _, ok := chat.ParseCallback(cb.Data)
	if !ok {
		f.answer(ctx, cb.ID, "")
		return
	}

	entry, err := f.verifications.Resolve(ctx, cb.ChatID, cb.MessageID)
	if err != nil {
		f.answer(ctx, cb.ID, i18n.T(staffLang, i18n.MsgStaffUnknownEntry))
		return
	}

	switch action {
	case chat.ActionApprove:
		f.approve(ctx, u, entry.CustomerID)
	case chat.ActionReject:
		c, err := f.customers.GetByID(ctx, entry.CustomerID)
		if err != nil {
			f.answer(ctx, cb.ID, i18n.T(staffLang, i18n.MsgErrorGeneral))
			return
		}
		if c.Status != models.StatusPending {
			f.answer(ctx, cb.ID, alreadyDone(c))
			return
		}
		s.Form = session.RejectReasonStep{CustomerID: c.ID, ChannelID: cb.ChatID, MessageID: cb.MessageID}
		f.answer(ctx, cb.ID, "")
		f.reply(ctx, cb.ChatID, i18n.T(staffLang, i18n.MsgStaffEnterReason, c.ClientCode), nil)
	default:
		f.answer(ctx, cb.ID, "")
	}
}

func alreadyDone(c *models.Customer) string {
	return i18n.T(staffLang, i18n.MsgStaffAlreadyDone, c.ClientCode, i18n.StatusLabel(staffLang, c.Status))
}

func (f *Flow) answer(ctx context.Context, callbackID, text string) {
	if err := f.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		f.logger.Debug(ctx, "callback answer failed", "error", err)
	}
}

func (f *Flow) approve(ctx context.Context, u chat.Update, customerID int64) {
	cb := u.Callback

	c, changed, err := f.customers.Approve(ctx, customerID)
	switch {
	case errors.Is(err, common.ErrInvalidTransition):
		if current, gerr := f.customers.GetByID(ctx, customerID); gerr == nil {
			f.answer(ctx, cb.ID, alreadyDone(current))
			return
		}
		f.answer(ctx, cb.ID, i18n.T(staffLang, i18n.MsgErrorGeneral))
		return
	case err != nil:
		f.answer(ctx, cb.ID, i18n.T(staffLang, i18n.MsgErrorGeneral))
		return
	case !changed:
		f.answer(ctx, cb.ID, alreadyDone(c))
		return
	}

	f.metrics.IncDecision(string(models.StatusApproved))
	f.logger.Info(ctx, "customer approved", "client_code", c.ClientCode, "staff_id", u.UserID)
	f.answer(ctx, cb.ID, "✅")
	f.closeApplication(ctx, c.ID, u.UserID, cb.ChatID, cb.MessageID)

	lang := c.Language
	if c.TelegramID != nil {
		f.dispatch(ctx, notify.Text(f.messenger, *c.TelegramID,
			i18n.T(lang, i18n.MsgApprovedNotice, c.ClientCode), menu.ForStatus(lang, c.Status)))
	}
	if f.channels.Approved != 0 {
		f.dispatch(ctx, notify.Text(f.messenger, f.channels.Approved,
			i18n.T(staffLang, i18n.MsgStaffApprovedCard, c.FullName, c.ClientCode, c.Phone), nil))
	}
	f.dispatch(ctx, notify.Text(f.messenger, cb.ChatID,
		i18n.T(staffLang, i18n.MsgStaffApprovedNote, c.ClientCode, u.UserID), nil))
}

// rejectReason takes the staff member's next text as the rejection reason.
func (f *Flow) rejectReason(ctx context.Context, u chat.Update, s *session.Session, form session.RejectReasonStep) {
	if intent, ok := i18n.IntentOf(u.Text); ok && intent == i18n.IntentCancel {
		s.Form = nil
		f.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgOperationCancelled), nil)
		return
	}

	reason := strings.TrimSpace(u.Text)
	if reason == "" {
		c, err := f.customers.GetByID(ctx, form.CustomerID)
		code := ""
		if err == nil {
			code = c.ClientCode
		}
		f.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgStaffEnterReason, code), nil)
		return
	}

	c, changed, err := f.customers.Reject(ctx, form.CustomerID, reason)
	switch {
	case errors.Is(err, common.ErrInvalidTransition):
		s.Form = nil
		if current, gerr := f.customers.GetByID(ctx, form.CustomerID); gerr == nil {
			f.reply(ctx, u.ChatID, alreadyDone(current), nil)
		}
		return
	case err != nil:
		f.reply(ctx, u.ChatID, i18n.T(staffLang, i18n.MsgErrorGeneral), nil)
		return
	}

	s.Form = nil
	if !changed {
		f.reply(ctx, u.ChatID, alreadyDone(c), nil)
		return
	}

	f.metrics.IncDecision(string(models.StatusRejected))
	f.logger.Info(ctx, "customer rejected", "client_code", c.ClientCode, "staff_id", u.UserID)
	f.closeApplication(ctx, c.ID, u.UserID, form.ChannelID, form.MessageID)

	lang := c.Language
	if c.TelegramID != nil {
		f.dispatch(ctx, notify.Text(f.messenger, *c.TelegramID,
			i18n.T(lang, i18n.MsgRejectedNotice, reason), menu.Welcome(lang)))
	}
	f.dispatch(ctx, notify.Text(f.messenger, form.ChannelID,
		i18n.T(staffLang, i18n.MsgStaffRejectedNote, c.ClientCode, u.UserID, reason), nil))
}

// closeApplication records the decision on the queue entry and removes the
// buttons from the verification message.
func (f *Flow) closeApplication(ctx context.Context, customerID, staffID, channelID int64, messageID int) {
	if err := f.verifications.MarkDecided(ctx, customerID, staffID); err != nil {
		f.logger.Warn(ctx, "queue entry not closed", "customer_id", customerID, "error", err)
	}
	if err := f.messenger.ClearInlineKeyboard(ctx, channelID, messageID); err != nil {
		f.logger.Debug(ctx, "decision buttons not removed", "error", err)
	}
}

package registration

import (
	"context"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

// StartLogin asks for the client code of an existing customer.
func (f *Flow) StartLogin(ctx context.Context, u chat.Update, s *session.Session) {
	s.Form = session.LoginCodeStep{}
	f.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgEnterClientCode), menu.Cancel(s.Lang()))
}

func (f *Flow) login(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()

	switch form := s.Form.(type) {
	case session.LoginCodeStep:
		code, err := validators.ClientCode(u.Text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		s.Form = session.LoginPhoneStep{ClientCode: code}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterPhoneVerify), menu.Cancel(lang))

	case session.LoginPhoneStep:
		s.Form = nil

		c, err := f.customers.VerifyLogin(ctx, form.ClientCode, u.Text, u.UserID, u.Username)
		if err != nil {
			f.metrics.IncLogin(false)
			if !isNotFound(err) {
				f.generalError(ctx, u, s, menu.Welcome(lang))
				return
			}
			f.logger.Info(ctx, "login failed", "telegram_id", u.UserID, "client_code", form.ClientCode)
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgLoginFailed), menu.Welcome(lang))
			return
		}

		f.metrics.IncLogin(true)
		s.CustomerID = &c.ID
		if c.Language != "" {
			s.Language = c.Language
			lang = c.Language
		}
		f.logger.Info(ctx, "customer logged in", "telegram_id", u.UserID, "client_code", c.ClientCode)
		f.reply(ctx, u.ChatID,
			i18n.T(lang, i18n.MsgLoginSuccess, c.FullName)+"\n\n"+menu.StatusText(lang, c),
			menu.ForStatus(lang, c.Status))
	}
}

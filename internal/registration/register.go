package registration

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

// Start opens the registration form. Users with an active pending or
// approved record are sent back to their menu instead.
func (f *Flow) Start(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()

	c, err := f.customers.GetByTelegramID(ctx, u.UserID)
	switch {
	case err == nil && c.Status != models.StatusRejected:
		s.CustomerID = &c.ID
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAlreadyRegistered), menu.ForStatus(lang, c.Status))
		return
	case err != nil && !isNotFound(err):
		f.generalError(ctx, u, s, nil)
		return
	}

	s.Form = session.FullNameStep{}
	f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterFullName), menu.Cancel(lang))
}

func (f *Flow) register(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	text := u.Text

	switch form := s.Form.(type) {
	case session.FullNameStep:
		name, err := validators.FullName(text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		s.Form = session.PhoneStep{FullName: name}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterPhone), menu.Cancel(lang))

	case session.PhoneStep:
		phone, err := validators.Phone(text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		s.Form = session.DocumentTypeStep{PhoneStep: form, Phone: phone}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgSelectDocumentType), menu.DocumentTypes(lang))

	case session.DocumentTypeStep:
		intent, _ := i18n.IntentOf(text)
		switch intent {
		case i18n.IntentDocBiometric:
			s.Form = session.FrontImageStep{DocumentTypeStep: form}
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUploadFront), menu.Cancel(lang))
		case i18n.IntentDocBooklet:
			s.Form = session.BookletImageStep{DocumentTypeStep: form}
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUploadBooklet), menu.Cancel(lang))
		default:
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUseButtons), menu.DocumentTypes(lang))
		}

	case session.FrontImageStep:
		if u.PhotoID == "" {
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgErrorPhoto), nil)
			return
		}
		s.Form = session.BackImageStep{FrontImageStep: form, FrontImageID: u.PhotoID}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUploadBack), menu.Cancel(lang))

	case session.BackImageStep:
		if u.PhotoID == "" {
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgErrorPhoto), nil)
			return
		}
		s.Form = session.DocNumberStep{
			DocumentTypeStep: form.DocumentTypeStep,
			DocumentType:     models.DocumentBiometric,
			FrontImageID:     form.FrontImageID,
			BackImageID:      u.PhotoID,
		}
		f.askDocumentNumber(ctx, u, lang)

	case session.BookletImageStep:
		if u.PhotoID == "" {
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgErrorPhoto), nil)
			return
		}
		s.Form = session.DocNumberStep{
			DocumentTypeStep: form.DocumentTypeStep,
			DocumentType:     models.DocumentBooklet,
			FrontImageID:     u.PhotoID,
			BackImageID:      u.PhotoID,
		}
		f.askDocumentNumber(ctx, u, lang)

	case session.DocNumberStep:
		number, err := f.rules.DocumentNumber(text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		s.Form = session.BirthDateStep{DocNumberStep: form, DocumentNumber: number}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterBirthDate), menu.Cancel(lang))

	case session.BirthDateStep:
		bd, err := f.rules.BirthDate(text, f.now())
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		next := session.PinflStep{BirthDateStep: form, BirthDate: bd.Formatted}
		if bd.Expiry != nil {
			expiry := bd.ExpiryFormatted()
			next.DocumentExpiry = &expiry
		}
		s.Form = next

		switch bd.Warning {
		case validators.ExpiryExpired:
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgPassportExpired, bd.ExpiryFormatted()), nil)
		case validators.ExpirySoon:
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgPassportExpiring, bd.ExpiryFormatted(), bd.MonthsLeft), nil)
		}
		f.sendTemplate(ctx, u.ChatID, menu.TemplatePinfl, i18n.T(lang, i18n.MsgPinflTemplate))
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterPinfl), menu.Cancel(lang))

	case session.PinflStep:
		pinfl, err := f.rules.Pinfl(text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		s.Form = session.AddressStep{PinflStep: form, Pinfl: pinfl}
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterAddress), menu.Cancel(lang))

	case session.AddressStep:
		address, err := validators.Address(text)
		if err != nil {
			f.invalid(ctx, u, s, err)
			return
		}
		next := session.ConfirmStep{AddressStep: form, Address: address}
		s.Form = next
		f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgConfirmRegistration,
			next.FullName, next.Phone, next.DocumentNumber, next.BirthDate, next.Pinfl, next.Address,
		), menu.Confirm(lang))

	case session.ConfirmStep:
		if intent, _ := i18n.IntentOf(text); intent != i18n.IntentConfirm {
			f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUseButtons), menu.Confirm(lang))
			return
		}
		f.submit(ctx, u, s, form)
	}
}

func (f *Flow) askDocumentNumber(ctx context.Context, u chat.Update, lang models.Language) {
	f.sendTemplate(ctx, u.ChatID, menu.TemplatePassport, i18n.T(lang, i18n.MsgDocumentTemplate))
	f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterDocumentNumber), menu.Cancel(lang))
}

// submit registers the confirmed form and hands the application to staff.
// On a storage failure the form stays at the confirmation step.
func (f *Flow) submit(ctx context.Context, u chat.Update, s *session.Session, form session.ConfirmStep) {
	lang := s.Lang()

	c := form.Customer()
	c.TelegramID = &u.UserID
	c.Username = u.Username
	c.Language = lang

	created, err := f.customers.Register(ctx, c)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			if existing, lerr := f.customers.GetByTelegramID(ctx, u.UserID); lerr == nil && existing.Status != models.StatusRejected {
				s.Form = nil
				s.CustomerID = &existing.ID
				f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAlreadyRegistered), menu.ForStatus(lang, existing.Status))
				return
			}
		}
		f.logger.Warn(ctx, "registration not stored", "telegram_id", u.UserID, "error", err)
		f.generalError(ctx, u, s, menu.Confirm(lang))
		return
	}

	s.Form = nil
	s.CustomerID = &created.ID
	f.metrics.IncRegistrations()
	f.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgRegistrationSubmitted), menu.ForStatus(lang, created.Status))

	f.dispatch(ctx, f.verificationJob(*created))
	if f.archive != nil {
		f.dispatch(ctx, f.archiveJob(*created))
	}
}

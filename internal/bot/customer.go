package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

const displayLayout = "02.01.2006 15:04"

// home shows the greeting for the session's user. With restore set a user
// without a session customer is looked up by chat id, which is how /start
// logs a known user back in.
func (b *Bot) home(ctx context.Context, u chat.Update, s *session.Session, restore bool) {
	c := b.customer(ctx, s)
	if c == nil && restore {
		found, err := b.customers.GetByTelegramID(ctx, u.UserID)
		switch {
		case err == nil:
			c = found
			s.CustomerID = &found.ID
			if s.Language == "" {
				s.Language = found.Language
			}
		case !isNotFound(err):
			b.generalError(ctx, u, s)
			return
		}
	}

	text, kb := menu.Home(s.Lang(), c)
	b.reply(ctx, u.ChatID, text, kb)
}

// menu handles a button press (or free text) at the main menu.
func (b *Bot) menu(ctx context.Context, u chat.Update, s *session.Session, intent i18n.Intent, ok bool) {
	lang := s.Lang()
	if !ok {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgInvalidCommand), b.keyboard(ctx, s))
		return
	}

	switch intent {
	case i18n.IntentRegister:
		b.workflow.Start(ctx, u, s)
	case i18n.IntentLogin:
		b.workflow.StartLogin(ctx, u, s)
	case i18n.IntentContacts:
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgContacts, b.cfg.ContactPhone, b.cfg.ContactHandle), b.keyboard(ctx, s))
	case i18n.IntentLanguage:
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgChooseLanguage), menu.Languages())
	case i18n.IntentLangUz:
		b.setLanguage(ctx, u, s, models.LanguageUz)
	case i18n.IntentLangRu:
		b.setLanguage(ctx, u, s, models.LanguageRu)
	case i18n.IntentStatus, i18n.IntentBack, i18n.IntentCancel:
		b.home(ctx, u, s, false)
	case i18n.IntentProfile, i18n.IntentMyParcels, i18n.IntentTrack,
		i18n.IntentWarehouse, i18n.IntentFeedback, i18n.IntentLogout:
		c := b.approved(ctx, u, s)
		if c == nil {
			return
		}
		b.customerAction(ctx, u, s, c, intent)
	default:
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgInvalidCommand), b.keyboard(ctx, s))
	}
}

// approved returns the session customer when it is approved and tells the
// user otherwise.
func (b *Bot) approved(ctx context.Context, u chat.Update, s *session.Session) *models.Customer {
	c := b.customer(ctx, s)
	if c == nil || c.Status != models.StatusApproved {
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgNotApproved), b.keyboard(ctx, s))
		return nil
	}
	return c
}

func (b *Bot) customerAction(ctx context.Context, u chat.Update, s *session.Session, c *models.Customer, intent i18n.Intent) {
	lang := s.Lang()

	switch intent {
	case i18n.IntentProfile:
		b.profile(ctx, u, s, c)
	case i18n.IntentMyParcels:
		b.parcels(ctx, u, s, c)
	case i18n.IntentTrack:
		s.Form = session.TrackStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterTrackingCode), menu.Cancel(lang))
	case i18n.IntentWarehouse:
		b.warehouse(ctx, u, s, c)
	case i18n.IntentFeedback:
		s.Form = session.FeedbackStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterFeedback), menu.Cancel(lang))
	case i18n.IntentLogout:
		s.Form = session.LogoutConfirmStep{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgLogoutConfirm), menu.YesNo(lang))
	}
}

// setLanguage remembers the choice in the session and, for a known
// customer, in the record.
func (b *Bot) setLanguage(ctx context.Context, u chat.Update, s *session.Session, lang models.Language) {
	s.Language = lang
	if c := b.customer(ctx, s); c != nil {
		if err := b.customers.SetLanguage(ctx, c.ID, lang); err != nil {
			b.logger.Warn(ctx, "language not stored", "customer_id", c.ID, "error", err)
		}
	}
	b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgLanguageChanged), b.keyboard(ctx, s))
}

func (b *Bot) profile(ctx context.Context, u chat.Update, s *session.Session, c *models.Customer) {
	lang := s.Lang()
	text := i18n.T(lang, i18n.MsgProfile,
		c.FullName, c.ClientCode, c.Phone, c.DocumentNumber, c.BirthDate, c.Pinfl, c.Address,
		i18n.StatusLabel(lang, c.Status), c.RegisteredAt.Format(displayLayout))
	b.reply(ctx, u.ChatID, text, menu.ForStatus(lang, c.Status))

	if warning := b.expiryWarning(lang, c); warning != "" {
		b.reply(ctx, u.ChatID, warning, nil)
	}
}

// expiryWarning re-checks the stored passport expiry against today.
func (b *Bot) expiryWarning(lang models.Language, c *models.Customer) string {
	if c.DocumentExpiry == nil {
		return ""
	}
	expiry, ok := validators.ParseStoredDate(*c.DocumentExpiry)
	if !ok {
		return ""
	}
	warning, months := b.cfg.Rules().CheckExpiry(expiry, b.now())
	switch warning {
	case validators.ExpiryExpired:
		return i18n.T(lang, i18n.MsgPassportExpired, *c.DocumentExpiry)
	case validators.ExpirySoon:
		return i18n.T(lang, i18n.MsgPassportExpiring, *c.DocumentExpiry, months)
	}
	return ""
}

func (b *Bot) parcels(ctx context.Context, u chat.Update, s *session.Session, c *models.Customer) {
	lang := s.Lang()
	list, err := b.shipments.ForCustomer(ctx, c.ClientCode)
	if err != nil {
		b.generalError(ctx, u, s)
		return
	}
	if len(list) == 0 {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgNoParcels), menu.ForStatus(lang, c.Status))
		return
	}
	for _, sh := range list {
		b.reply(ctx, u.ChatID, parcel(lang, sh), nil)
	}
}

func parcel(lang models.Language, sh models.Shipment) string {
	return i18n.T(lang, i18n.MsgParcel,
		sh.TrackingCode, sh.ShippingName, sh.PackageNumber, sh.Weight, sh.Quantity, sh.Flight, sh.CustomerCode)
}

func (b *Bot) trackStep(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	if cancelled(u) {
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgOperationCancelled), b.keyboard(ctx, s))
		return
	}

	code := strings.TrimSpace(u.Text)
	if code == "" {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgEnterTrackingCode), menu.Cancel(lang))
		return
	}

	s.Form = nil
	b.track(ctx, u, s, code)
}

// track prints the shipments with the tracking code.
func (b *Bot) track(ctx context.Context, u chat.Update, s *session.Session, code string) {
	lang := s.Lang()
	list, err := b.shipments.Track(ctx, code)
	if err != nil {
		b.generalError(ctx, u, s)
		return
	}
	if len(list) == 0 {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgTrackNotFound, code), b.keyboard(ctx, s))
		return
	}
	for i, sh := range list {
		var kb chat.Markup
		if i == len(list)-1 {
			kb = b.keyboard(ctx, s)
		}
		b.reply(ctx, u.ChatID, parcel(lang, sh), kb)
	}
}

// warehouse shows the China warehouse address with the customer's code.
// Customers who have not confirmed the address yet are asked to.
func (b *Bot) warehouse(ctx context.Context, u chat.Update, s *session.Session, c *models.Customer) {
	lang := s.Lang()
	address := i18n.T(lang, i18n.MsgWarehouseAddress, c.ClientCode, b.cfg.WarehousePhone, c.ClientCode)

	if _, err := b.messenger.SendPhoto(ctx, u.ChatID, menu.Template(b.cfg.TemplatesDir, menu.TemplateWarehouse), address, nil); err != nil {
		b.logger.Debug(ctx, "warehouse template not sent", "error", err)
		b.reply(ctx, u.ChatID, address, nil)
	}

	if c.AddressConfirmed {
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAddressAlreadyConfirmed), menu.ForStatus(lang, c.Status))
		return
	}
	s.Form = session.WarehouseConfirmStep{}
	b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgWarehouseConfirm), menu.YesNo(lang))
}

func (b *Bot) warehouseConfirm(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	intent, _ := i18n.IntentOf(u.Text)

	switch intent {
	case i18n.IntentYes:
		s.Form = nil
		c := b.customer(ctx, s)
		if c == nil {
			b.generalError(ctx, u, s)
			return
		}
		if err := b.customers.ConfirmAddress(ctx, c.ID); err != nil {
			b.generalError(ctx, u, s)
			return
		}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAddressConfirmed), menu.ForStatus(lang, c.Status))
	case i18n.IntentNo, i18n.IntentCancel, i18n.IntentBack:
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgAddressRecheck), b.keyboard(ctx, s))
	default:
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUseButtons), menu.YesNo(lang))
	}
}

// logoutConfirm clears the whole session, language included.
func (b *Bot) logoutConfirm(ctx context.Context, u chat.Update, s *session.Session) {
	lang := s.Lang()
	intent, _ := i18n.IntentOf(u.Text)

	switch intent {
	case i18n.IntentYes:
		*s = session.Session{}
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgLogoutDone), menu.Welcome(lang))
	case i18n.IntentNo, i18n.IntentCancel, i18n.IntentBack:
		s.Form = nil
		b.home(ctx, u, s, false)
	default:
		b.reply(ctx, u.ChatID, i18n.T(lang, i18n.MsgUseButtons), menu.YesNo(lang))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}

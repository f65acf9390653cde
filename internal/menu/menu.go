// Package menu builds the keyboards and home screens a user sees, keyed by
// verification status.
package menu

import (
	"path/filepath"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/models"
)

// Template images shipped in the templates directory.
const (
	TemplatePassport  = "passport_number.jpg"
	TemplatePinfl     = "pinfl.jpg"
	TemplateWarehouse = "china_address.jpg"
)

// Template returns the photo for a template image in dir.
func Template(dir, name string) chat.Photo {
	return chat.Photo{Path: filepath.Join(dir, name)}
}

func row(lang models.Language, intents ...i18n.Intent) []string {
	r := make([]string, len(intents))
	for i, in := range intents {
		r[i] = i18n.Label(lang, in)
	}
	return r
}

// Welcome is the keyboard of users without an active customer record and of
// rejected customers.
func Welcome(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{
		row(lang, i18n.IntentRegister, i18n.IntentLogin),
		row(lang, i18n.IntentContacts, i18n.IntentLanguage),
	}}
}

// ForStatus returns the main keyboard for a customer with status.
func ForStatus(lang models.Language, status models.VerificationStatus) chat.ReplyKeyboard {
	switch status {
	case models.StatusApproved:
		return chat.ReplyKeyboard{Rows: [][]string{
			row(lang, i18n.IntentProfile, i18n.IntentMyParcels),
			row(lang, i18n.IntentTrack, i18n.IntentWarehouse),
			row(lang, i18n.IntentFeedback, i18n.IntentContacts),
			row(lang, i18n.IntentLanguage, i18n.IntentLogout),
		}}
	case models.StatusPending:
		return chat.ReplyKeyboard{Rows: [][]string{
			row(lang, i18n.IntentStatus),
			row(lang, i18n.IntentContacts, i18n.IntentLanguage),
		}}
	case models.StatusRejected:
		return Welcome(lang)
	}
	return Welcome(lang)
}

// Home returns the greeting and keyboard for c, or for an unknown user when
// c is nil.
func Home(lang models.Language, c *models.Customer) (string, chat.ReplyKeyboard) {
	if c == nil {
		return i18n.T(lang, i18n.MsgWelcomeNew), Welcome(lang)
	}
	text := i18n.T(lang, i18n.MsgWelcomeRegistered,
		c.FullName, c.ClientCode, c.Phone, i18n.StatusLabel(lang, c.Status), StatusText(lang, c))
	return text, ForStatus(lang, c.Status)
}

// StatusText explains what c's status means for the customer.
func StatusText(lang models.Language, c *models.Customer) string {
	switch c.Status {
	case models.StatusApproved:
		return i18n.T(lang, i18n.MsgStatusApproved)
	case models.StatusPending:
		return i18n.T(lang, i18n.MsgStatusPending)
	case models.StatusRejected:
		reason := ""
		if c.RejectionReason != nil {
			reason = *c.RejectionReason
		}
		return i18n.T(lang, i18n.MsgStatusRejected, reason)
	}
	return ""
}

func Cancel(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{row(lang, i18n.IntentCancel)}}
}

func DocumentTypes(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{
		row(lang, i18n.IntentDocBiometric),
		row(lang, i18n.IntentDocBooklet),
		row(lang, i18n.IntentCancel),
	}}
}

func Confirm(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{row(lang, i18n.IntentConfirm, i18n.IntentCancel)}}
}

func YesNo(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{row(lang, i18n.IntentYes, i18n.IntentNo)}}
}

func Languages() chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{row(models.LanguageUz, i18n.IntentLangUz, i18n.IntentLangRu)}}
}

func Admin(lang models.Language) chat.ReplyKeyboard {
	return chat.ReplyKeyboard{Rows: [][]string{
		row(lang, i18n.IntentAdminStats, i18n.IntentAdminSearch),
		row(lang, i18n.IntentAdminTrack, i18n.IntentAdminShipments),
		row(lang, i18n.IntentAdminImport, i18n.IntentAdminBroadcast),
		row(lang, i18n.IntentAdminClear),
	}}
}

// Decision is the approve/reject keyboard under a verification message.
func Decision(customerID int64) chat.InlineKeyboard {
	lang := models.LanguageUz
	return chat.InlineKeyboard{Rows: [][]chat.InlineButton{{
		{Text: i18n.Label(lang, i18n.IntentApprove), Data: chat.CallbackData(chat.ActionApprove, customerID)},
		{Text: i18n.Label(lang, i18n.IntentReject), Data: chat.CallbackData(chat.ActionReject, customerID)},
	}}}
}

// Reply is the keyboard under a forwarded feedback message.
func Reply(feedbackID int64) chat.InlineKeyboard {
	return chat.InlineKeyboard{Rows: [][]chat.InlineButton{{
		{Text: i18n.Label(models.LanguageUz, i18n.IntentReply), Data: chat.CallbackData(chat.ActionReply, feedbackID)},
	}}}
}

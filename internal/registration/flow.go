// Package registration runs the customer onboarding conversation: the
// multi-step registration form, the login sub-flow and the staff decisions
// that approve or reject a submitted application.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/documents"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/metrics"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/notify"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

// Customers is the part of the customer service the workflow uses.
type Customers interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error)
	Register(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Approve(ctx context.Context, id int64) (*models.Customer, bool, error)
	Reject(ctx context.Context, id int64, reason string) (*models.Customer, bool, error)
	VerifyLogin(ctx context.Context, code, phone string, telegramID int64, username string) (*models.Customer, error)
	SetArchiveKeys(ctx context.Context, id int64, front, back string) error
}

// Verifications links staff messages to the customers they describe.
type Verifications interface {
	Enqueue(ctx context.Context, customerID, channelID int64, messageID int) (*models.QueueEntry, error)
	Resolve(ctx context.Context, channelID int64, messageID int) (*models.QueueEntry, error)
	MarkDecided(ctx context.Context, customerID, staffID int64) error
}

// Dispatcher runs notification jobs in the background.
type Dispatcher interface {
	Enqueue(ctx context.Context, job notify.Job) error
}

// Archiver stores encrypted copies of a customer's document images.
type Archiver interface {
	ArchiveCustomer(ctx context.Context, d documents.Downloader, c *models.Customer) (string, string, error)
}

// Channels are the staff chats the workflow posts to. Approved may be 0.
type Channels struct {
	Verification int64
	Approved     int64
}

type Deps struct {
	Customers     Customers
	Verifications Verifications
	Messenger     chat.Messenger
	Dispatcher    Dispatcher
	Archive       Archiver // optional
	Rules         validators.Rules
	Channels      Channels
	TemplatesDir  string
	Logger        logging.Logger
	Metrics       *metrics.Metrics
}

type Flow struct {
	customers     Customers
	verifications Verifications
	messenger     chat.Messenger
	dispatcher    Dispatcher
	archive       Archiver
	rules         validators.Rules
	channels      Channels
	templatesDir  string
	logger        logging.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

func New(d Deps) *Flow {
	return &Flow{
		customers:     d.Customers,
		verifications: d.Verifications,
		messenger:     d.Messenger,
		dispatcher:    d.Dispatcher,
		archive:       d.Archive,
		rules:         d.Rules,
		channels:      d.Channels,
		templatesDir:  d.TemplatesDir,
		logger:        d.Logger.With("module", "registration"),
		metrics:       d.Metrics,
		now:           time.Now,
	}
}

// Handle advances the form in s when it belongs to this workflow. It
// reports false for forms owned by other handlers.
func (f *Flow) Handle(ctx context.Context, u chat.Update, s *session.Session) bool {
	switch form := s.Form.(type) {
	case session.FullNameStep, session.PhoneStep, session.DocumentTypeStep,
		session.FrontImageStep, session.BackImageStep, session.BookletImageStep,
		session.DocNumberStep, session.BirthDateStep, session.PinflStep,
		session.AddressStep, session.ConfirmStep:
		if f.cancelled(ctx, u, s) {
			return true
		}
		f.register(ctx, u, s)
	case session.LoginCodeStep, session.LoginPhoneStep:
		if f.cancelled(ctx, u, s) {
			return true
		}
		f.login(ctx, u, s)
	case session.RejectReasonStep:
		f.rejectReason(ctx, u, s, form)
	default:
		return false
	}
	return true
}

// cancelled aborts the form when the user pressed Cancel.
func (f *Flow) cancelled(ctx context.Context, u chat.Update, s *session.Session) bool {
	if intent, ok := i18n.IntentOf(u.Text); !ok || intent != i18n.IntentCancel {
		return false
	}
	s.Form = nil
	f.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgOperationCancelled), f.homeKeyboard(ctx, s))
	return true
}

// homeKeyboard is the main keyboard for the customer the session belongs
// to, or the welcome keyboard for anonymous users.
func (f *Flow) homeKeyboard(ctx context.Context, s *session.Session) chat.ReplyKeyboard {
	if s.CustomerID == nil {
		return menu.Welcome(s.Lang())
	}
	c, err := f.customers.GetByID(ctx, *s.CustomerID)
	if err != nil {
		return menu.Welcome(s.Lang())
	}
	return menu.ForStatus(s.Lang(), c.Status)
}

// reply sends a message to the acting user. Delivery failures are logged;
// there is nobody else to tell.
func (f *Flow) reply(ctx context.Context, chatID int64, text string, markup chat.Markup) {
	if _, err := f.messenger.SendText(ctx, chatID, text, markup); err != nil {
		f.logger.Warn(ctx, "reply not delivered", "chat_id", chatID, "error", err)
	}
}

// invalid re-prompts the current step with the reason err was refused.
func (f *Flow) invalid(ctx context.Context, u chat.Update, s *session.Session, err error) {
	f.reply(ctx, u.ChatID, i18n.ValidationMessage(s.Lang(), err), nil)
}

func (f *Flow) generalError(ctx context.Context, u chat.Update, s *session.Session, markup chat.Markup) {
	f.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgErrorGeneral), markup)
}

// sendTemplate shows a hint image. Missing templates are not an error.
func (f *Flow) sendTemplate(ctx context.Context, chatID int64, name, caption string) {
	if _, err := f.messenger.SendPhoto(ctx, chatID, menu.Template(f.templatesDir, name), caption, nil); err != nil {
		f.logger.Debug(ctx, "template image not sent", "template", name, "error", err)
	}
}

func (f *Flow) dispatch(ctx context.Context, job notify.Job) {
	if err := f.dispatcher.Enqueue(ctx, job); err != nil {
		f.logger.Error(ctx, "notification not queued", "job", job.Name, "error", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}

// Package bot is the entry point for every inbound chat update. It loads
// the user's session, routes the update to the admin surface, a staff
// action, the form in progress or the status-gated customer menu, and saves
// the session afterwards.
package bot

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/config"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/importer"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/metrics"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/session"
)

// Customers is the part of the customer service the controller uses.
type Customers interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
	SetLanguage(ctx context.Context, id int64, lang models.Language) error
	ConfirmAddress(ctx context.Context, id int64) error
	ListApproved(ctx context.Context) ([]models.Customer, error)
	Stats(ctx context.Context) (models.StatusCounts, error)
	ClearAll(ctx context.Context) (int64, error)
}

type Shipments interface {
	Track(ctx context.Context, trackingCode string) ([]models.Shipment, error)
	ForCustomer(ctx context.Context, clientCode string) ([]models.Shipment, error)
	Count(ctx context.Context) (int, error)
}

type Feedback interface {
	Save(ctx context.Context, customerID *int64, telegramID int64, message string) (*models.Feedback, error)
	Get(ctx context.Context, id int64) (*models.Feedback, error)
	Reply(ctx context.Context, id int64, reply string) (*models.Feedback, error)
}

type Verifications interface {
	CountOpen(ctx context.Context) (int, error)
}

type Importer interface {
	ImportCustomers(ctx context.Context, path string) (*importer.Report, error)
	ImportShipments(ctx context.Context, path string) (int, error)
}

// Workflow is the registration, login and staff decision flow.
type Workflow interface {
	Start(ctx context.Context, u chat.Update, s *session.Session)
	StartLogin(ctx context.Context, u chat.Update, s *session.Session)
	Handle(ctx context.Context, u chat.Update, s *session.Session) bool
	Decide(ctx context.Context, u chat.Update, s *session.Session)
}

type Deps struct {
	Config        *config.Config
	Sessions      session.Store
	Customers     Customers
	Shipments     Shipments
	Feedback      Feedback
	Verifications Verifications
	Importer      Importer
	Workflow      Workflow
	Messenger     chat.Messenger
	Logger        logging.Logger
	Metrics       *metrics.Metrics
}

type Bot struct {
	cfg           *config.Config
	sessions      session.Store
	customers     Customers
	shipments     Shipments
	feedback      Feedback
	verifications Verifications
	importer      Importer
	workflow      Workflow
	messenger     chat.Messenger
	logger        logging.Logger
	metrics       *metrics.Metrics

	// background tracks detached imports and broadcasts
	background sync.WaitGroup
	now        func() time.Time
}

func New(d Deps) *Bot {
	return &Bot{
		cfg:           d.Config,
		sessions:      d.Sessions,
		customers:     d.Customers,
		shipments:     d.Shipments,
		feedback:      d.Feedback,
		verifications: d.Verifications,
		importer:      d.Importer,
		workflow:      d.Workflow,
		messenger:     d.Messenger,
		logger:        d.Logger.With("module", "bot"),
		metrics:       d.Metrics,
		now:           time.Now,
	}
}

// HandleUpdate processes one update. It is called sequentially by the
// transport, so a user's session is never accessed concurrently.
func (b *Bot) HandleUpdate(ctx context.Context, u chat.Update) {
	start := time.Now()
	defer b.metrics.ObserveUpdate(updateKind(u), start)

	s, err := b.sessions.Get(ctx, u.UserID)
	if err != nil {
		b.logger.Warn(ctx, "session not loaded", "user_id", u.UserID, "error", err)
		s = &session.Session{}
	}

	b.route(ctx, u, s)
	b.store(ctx, u.UserID, s)
}

// store saves s, or drops the stored session once s is empty.
func (b *Bot) store(ctx context.Context, userID int64, s *session.Session) {
	if s.Empty() {
		if err := b.sessions.Delete(ctx, userID); err != nil {
			b.logger.Warn(ctx, "session not deleted", "user_id", userID, "error", err)
		}
		return
	}
	if err := b.sessions.Save(ctx, userID, s); err != nil {
		b.logger.Warn(ctx, "session not saved", "user_id", userID, "error", err)
	}
}

// Wait blocks until detached operations have finished.
func (b *Bot) Wait() {
	b.background.Wait()
}

func updateKind(u chat.Update) string {
	switch {
	case u.Callback != nil:
		return "callback"
	case u.Command != "":
		return "command"
	case u.Document != nil:
		return "document"
	case u.PhotoID != "":
		return "photo"
	}
	return "text"
}

func (b *Bot) route(ctx context.Context, u chat.Update, s *session.Session) {
	if u.Callback != nil {
		b.callback(ctx, u, s)
		return
	}

	// staff channels only ever continue a staff form
	if !u.Private {
		if !s.Idle() {
			b.form(ctx, u, s)
		}
		return
	}

	admin := b.cfg.IsAdmin(u.UserID)

	if u.Command != "" {
		b.command(ctx, u, s, admin)
		return
	}

	if !s.Idle() {
		b.form(ctx, u, s)
		return
	}

	intent, ok := i18n.IntentOf(u.Text)
	if admin && ok && isAdminIntent(intent) {
		b.admin(ctx, u, s, intent)
		return
	}
	b.menu(ctx, u, s, intent, ok)
}

func (b *Bot) command(ctx context.Context, u chat.Update, s *session.Session, admin bool) {
	switch u.Command {
	case "start":
		s.Form = nil
		if admin {
			b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgAdminPanel), menu.Admin(s.Lang()))
			return
		}
		b.home(ctx, u, s, true)
	case "admin":
		if !admin {
			b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgInvalidCommand), nil)
			return
		}
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgAdminPanel), menu.Admin(s.Lang()))
	case "cancel":
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgOperationCancelled), b.keyboard(ctx, s))
	default:
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgInvalidCommand), b.keyboard(ctx, s))
	}
}

// callback dispatches inline button presses. Decision buttons are honoured
// in the verification channel or from admins; reply buttons in the feedback
// channel or from admins.
func (b *Bot) callback(ctx context.Context, u chat.Update, s *session.Session) {
	cb := u.Callback
	action, id, ok := chat.ParseCallback(cb.Data)
	admin := b.cfg.IsAdmin(u.UserID)

	switch {
	case ok && (action == chat.ActionApprove || action == chat.ActionReject) &&
		(admin || cb.ChatID == b.cfg.VerificationGroupID):
		b.workflow.Decide(ctx, u, s)
	case ok && action == chat.ActionReply && (admin || cb.ChatID == b.cfg.FeedbackGroupID):
		b.startReply(ctx, u, s, id)
	default:
		b.answer(ctx, cb.ID)
	}
}

// form continues the form in progress.
func (b *Bot) form(ctx context.Context, u chat.Update, s *session.Session) {
	if b.workflow.Handle(ctx, u, s) {
		return
	}

	switch form := s.Form.(type) {
	case session.FeedbackStep:
		b.submitFeedback(ctx, u, s)
	case session.TrackStep:
		b.trackStep(ctx, u, s)
	case session.WarehouseConfirmStep:
		b.warehouseConfirm(ctx, u, s)
	case session.LogoutConfirmStep:
		b.logoutConfirm(ctx, u, s)
	case session.FeedbackReplyStep:
		b.sendReply(ctx, u, s, form)
	case session.AdminSearchStep, session.AdminTrackStep, session.AdminShipmentsStep,
		session.AdminCustomersStep, session.AdminBroadcastStep, session.AdminClearStep:
		b.adminForm(ctx, u, s)
	default:
		b.logger.Warn(ctx, "form without handler dropped", "kind", string(form.Kind()))
		s.Form = nil
		b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgBackToMain), b.keyboard(ctx, s))
	}
}

// customer returns the customer the session is logged in as, or nil. A
// session pointing at a record that no longer exists is logged out.
func (b *Bot) customer(ctx context.Context, s *session.Session) *models.Customer {
	if s.CustomerID == nil {
		return nil
	}
	c, err := b.customers.GetByID(ctx, *s.CustomerID)
	if err != nil {
		if isNotFound(err) {
			s.CustomerID = nil
		}
		return nil
	}
	if !c.IsActive {
		s.CustomerID = nil
		return nil
	}
	return c
}

// keyboard is the main keyboard for the session's user.
func (b *Bot) keyboard(ctx context.Context, s *session.Session) chat.Markup {
	c := b.customer(ctx, s)
	if c == nil {
		return menu.Welcome(s.Lang())
	}
	return menu.ForStatus(s.Lang(), c.Status)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup chat.Markup) {
	if _, err := b.messenger.SendText(ctx, chatID, text, markup); err != nil {
		b.logger.Warn(ctx, "reply not delivered", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answer(ctx context.Context, callbackID string) {
	if err := b.messenger.AnswerCallback(ctx, callbackID, ""); err != nil {
		b.logger.Debug(ctx, "callback answer failed", "error", err)
	}
}

func (b *Bot) generalError(ctx context.Context, u chat.Update, s *session.Session) {
	b.reply(ctx, u.ChatID, i18n.T(s.Lang(), i18n.MsgErrorGeneral), b.keyboard(ctx, s))
}

// cancelled clears the form when the user pressed Cancel or Back.
func cancelled(u chat.Update) bool {
	intent, ok := i18n.IntentOf(u.Text)
	return ok && (intent == i18n.IntentCancel || intent == i18n.IntentBack)
}

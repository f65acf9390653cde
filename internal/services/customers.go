// Package services holds the Record Store operations the bot and the import
// tools call. Each operation runs in its own short transaction; storage
// failures are logged here and surfaced as the sentinel errors of
// internal/common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/config"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

const searchLimit = 10

// CustomerService manages customer records and their verification status.
type CustomerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger

	codePrefix string
	codeStart  int

	// registration serializes client code assignment within the process
	registration sync.Mutex

	now func() time.Time
}

func NewCustomerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *CustomerService {
	return &CustomerService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "customers"),
		codePrefix:  cfg.ClientCodePrefix,
		codeStart:   cfg.ClientCodeStart,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// translate logs unexpected storage errors and maps them to sentinels.
func (s *CustomerService) translate(ctx context.Context, op string, err error) error {
	err = dbx.Translate(err)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrEmptyReason):
		return err
	case errors.Is(err, common.ErrorAlreadyExists):
		if err != common.ErrorAlreadyExists {
			s.logger.Warn(ctx, "duplicate record", "op", op, "error", err)
		}
		return common.ErrorAlreadyExists
	default:
		s.logger.Error(ctx, "storage failure", "op", op, "error", err)
		return common.ErrorInternal
	}
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := s.repomanager.Customers(s.db).GetByID(ctx, id)
	return c, s.translate(ctx, "get_by_id", err)
}

func (s *CustomerService) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error) {
	c, err := s.repomanager.Customers(s.db).GetByTelegramID(ctx, telegramID)
	return c, s.translate(ctx, "get_by_telegram_id", err)
}

func (s *CustomerService) GetByClientCode(ctx context.Context, code string) (*models.Customer, error) {
	c, err := s.repomanager.Customers(s.db).GetByClientCode(ctx, strings.TrimSpace(code))
	return c, s.translate(ctx, "get_by_client_code", err)
}

// Search matches the query against client codes and phone numbers.
func (s *CustomerService) Search(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	list, err := s.repomanager.Customers(s.db).Search(ctx, query, validators.PhoneQuery(query), searchLimit)
	return list, s.translate(ctx, "search", err)
}

// NextClientCode returns the code following the highest numeric suffix among
// codes, never lower than start. Suffixes that do not parse are ignored.
func NextClientCode(codes []string, prefix string, start int) string {
	highest := start - 1
	for _, code := range codes {
		if len(code) <= len(prefix) || !strings.EqualFold(code[:len(prefix)], prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// GenerateClientCode computes the next client code from the current store.
func (s *CustomerService) GenerateClientCode(ctx context.Context) (string, error) {
	codes, err := s.repomanager.Customers(s.db).ListClientCodes(ctx, s.codePrefix)
	if err != nil {
		return "", s.translate(ctx, "list_client_codes", err)
	}
	return NextClientCode(codes, s.codePrefix, s.codeStart), nil
}

// Register stores c as a new pending customer under a freshly assigned client
// code. An active rejected record of the same chat user is deactivated; an
// active pending or approved one makes the call fail with
// common.ErrorAlreadyExists.
func (s *CustomerService) Register(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	s.registration.Lock()
	defer s.registration.Unlock()

	var created *models.Customer
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Customers(tx)

		if c.TelegramID != nil {
			existing, err := repo.GetByTelegramID(ctx, *c.TelegramID)
			switch {
			case err == nil:
				if existing.Status != models.StatusRejected {
					return common.ErrorAlreadyExists
				}
				if err := repo.Deactivate(ctx, existing.ID); err != nil {
					return err
				}
			case !errors.Is(err, common.ErrorNotFound):
				return err
			}
		}

		codes, err := repo.ListClientCodes(ctx, s.codePrefix)
		if err != nil {
			return err
		}

		c.ClientCode = NextClientCode(codes, s.codePrefix, s.codeStart)
		c.Status = models.StatusPending
		c.RejectionReason = nil
		c.VerifiedAt = nil
		c.IsActive = true
		c.RegisteredAt = s.now()
		if c.Language == "" {
			c.Language = models.LanguageUz
		}

		created, err = repo.Create(ctx, c)
		return err
	})
	if err != nil {
		return nil, s.translate(ctx, "register", err)
	}

	s.logger.Info(ctx, "customer registered", "client_code", created.ClientCode, "customer_id", created.ID)
	return created, nil
}

// Approve moves a pending customer to approved. It reports whether the status
// changed; approving an approved customer is a no-op.
func (s *CustomerService) Approve(ctx context.Context, id int64) (*models.Customer, bool, error) {
	return s.decide(ctx, id, models.StatusApproved, "")
}

// Reject moves a pending customer to rejected with a reason. Rejecting a
// rejected customer is a no-op.
func (s *CustomerService) Reject(ctx context.Context, id int64, reason string) (*models.Customer, bool, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, false, common.ErrEmptyReason
	}
	return s.decide(ctx, id, models.StatusRejected, reason)
}

func (s *CustomerService) decide(ctx context.Context, id int64, target models.VerificationStatus, reason string) (*models.Customer, bool, error) {
	var (
		result  *models.Customer
		changed bool
	)
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Customers(tx)

		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		switch c.Status {
		case target:
			result = c
			return nil
		case models.StatusPending:
		default:
			return common.ErrInvalidTransition
		}

		var (
			reasonPtr  *string
			verifiedAt *time.Time
		)
		if target == models.StatusApproved {
			now := s.now()
			verifiedAt = &now
		} else {
			reasonPtr = &reason
		}

		if err := repo.UpdateStatus(ctx, id, target, reasonPtr, verifiedAt); err != nil {
			return err
		}

		c.Status = target
		c.RejectionReason = reasonPtr
		c.VerifiedAt = verifiedAt
		result, changed = c, true
		return nil
	})
	if err != nil {
		return nil, false, s.translate(ctx, "decide", err)
	}

	if changed {
		s.logger.Info(ctx, "verification decided", "customer_id", id, "status", string(target))
	}
	return result, changed, nil
}

// VerifyLogin finds the active customer with the given client code whose
// phone contains the supplied digits and stamps the login time. A record
// without a chat user yet is linked to telegramID.
func (s *CustomerService) VerifyLogin(ctx context.Context, code, phone string, telegramID int64, username string) (*models.Customer, error) {
	code = strings.TrimSpace(code)
	phoneQuery := validators.PhoneQuery(phone)
	if code == "" || phoneQuery == "" {
		return nil, common.ErrorNotFound
	}

	var result *models.Customer
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Customers(tx)

		c, err := repo.FindForLogin(ctx, code, phoneQuery)
		if err != nil {
			return err
		}

		now := s.now()
		if err := repo.TouchLogin(ctx, c.ID, now); err != nil {
			return err
		}
		c.LastLoginAt = &now

		if c.TelegramID == nil {
			_, err := repo.GetByTelegramID(ctx, telegramID)
			switch {
			case errors.Is(err, common.ErrorNotFound):
				if err := repo.AttachTelegram(ctx, c.ID, telegramID, username); err != nil {
					return err
				}
				c.TelegramID = &telegramID
				c.Username = username
			case err != nil:
				return err
			}
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "verify_login", err)
	}
	return result, nil
}

func (s *CustomerService) SetLanguage(ctx context.Context, id int64, lang models.Language) error {
	return s.translate(ctx, "set_language", s.repomanager.Customers(s.db).SetLanguage(ctx, id, lang))
}

func (s *CustomerService) ConfirmAddress(ctx context.Context, id int64) error {
	return s.translate(ctx, "confirm_address", s.repomanager.Customers(s.db).ConfirmAddress(ctx, id))
}

func (s *CustomerService) SetArchiveKeys(ctx context.Context, id int64, front, back string) error {
	return s.translate(ctx, "set_archive_keys", s.repomanager.Customers(s.db).SetArchiveKeys(ctx, id, front, back))
}

// ListApproved returns active approved customers reachable in chat.
func (s *CustomerService) ListApproved(ctx context.Context) ([]models.Customer, error) {
	list, err := s.repomanager.Customers(s.db).ListApproved(ctx)
	return list, s.translate(ctx, "list_approved", err)
}

func (s *CustomerService) Stats(ctx context.Context) (models.StatusCounts, error) {
	counts, err := s.repomanager.Customers(s.db).CountByStatus(ctx)
	return counts, s.translate(ctx, "stats", err)
}

// ClearAll deletes every customer record. It is an administrative action.
func (s *CustomerService) ClearAll(ctx context.Context) (int64, error) {
	var n int64
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = s.repomanager.Customers(tx).DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, s.translate(ctx, "clear_all", err)
	}
	s.logger.Warn(ctx, "all customers deleted", "count", n)
	return n, nil
}

// UpsertImported stores an imported customer as approved, updating the record
// that matches its client code or PINFL. It reports whether a record was
// created.
func (s *CustomerService) UpsertImported(ctx context.Context, c *models.Customer) (bool, error) {
	var created bool
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Customers(tx)
		now := s.now()
		c.VerifiedAt = &now

		existing, err := repo.GetByClientCodeOrPinfl(ctx, c.ClientCode, c.Pinfl)
		switch {
		case err == nil:
			c.ID = existing.ID
			return repo.UpdateImported(ctx, c)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		c.Status = models.StatusApproved
		c.IsActive = true
		c.Language = models.LanguageUz
		c.RegisteredAt = now
		if _, err := repo.Create(ctx, c); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, s.translate(ctx, "upsert_imported", err)
	}
	return created, nil
}

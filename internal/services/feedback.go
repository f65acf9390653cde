package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
)

type FeedbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewFeedbackService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *FeedbackService {
	return &FeedbackService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "feedback"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Save stores a customer message. customerID is nil for chat users without
// a customer record.
func (s *FeedbackService) Save(ctx context.Context, customerID *int64, telegramID int64, message string) (*models.Feedback, error) {
	f, err := s.repomanager.Feedbacks(s.db).Create(ctx, &models.Feedback{
		CustomerID: customerID,
		TelegramID: telegramID,
		Message:    strings.TrimSpace(message),
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error(ctx, "feedback save failed", "telegram_id", telegramID, "error", err)
		return nil, translateStorage(err)
	}
	return f, nil
}

func (s *FeedbackService) Get(ctx context.Context, id int64) (*models.Feedback, error) {
	f, err := s.repomanager.Feedbacks(s.db).GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "feedback lookup failed", "feedback_id", id, "error", err)
		}
		return nil, translateStorage(err)
	}
	return f, nil
}

// Reply records the staff answer to a feedback message.
func (s *FeedbackService) Reply(ctx context.Context, id int64, reply string) (*models.Feedback, error) {
	repo := s.repomanager.Feedbacks(s.db)
	now := s.now()
	reply = strings.TrimSpace(reply)

	if err := repo.SetReply(ctx, id, reply, now); err != nil {
		s.logger.Error(ctx, "feedback reply failed", "feedback_id", id, "error", err)
		return nil, translateStorage(err)
	}

	f, err := repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "feedback lookup failed", "feedback_id", id, "error", err)
		return nil, translateStorage(err)
	}
	return f, nil
}

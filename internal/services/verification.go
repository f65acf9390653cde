package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
)

// VerificationService links staff-channel messages to the customers they
// announce.
type VerificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewVerificationService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *VerificationService {
	return &VerificationService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "verification"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *VerificationService) Enqueue(ctx context.Context, customerID, channelID int64, messageID int) (*models.QueueEntry, error) {
	e, err := s.repomanager.Verifications(s.db).Add(ctx, &models.QueueEntry{
		CustomerID:  customerID,
		ChannelID:   channelID,
		MessageID:   messageID,
		SubmittedAt: s.now(),
	})
	if err != nil {
		s.logger.Error(ctx, "queue entry add failed", "customer_id", customerID, "error", err)
		return nil, translateStorage(err)
	}
	return e, nil
}

// Resolve returns the queue entry created for the given staff message.
func (s *VerificationService) Resolve(ctx context.Context, channelID int64, messageID int) (*models.QueueEntry, error) {
	e, err := s.repomanager.Verifications(s.db).GetByMessage(ctx, channelID, messageID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "queue entry lookup failed", "channel_id", channelID, "message_id", messageID, "error", err)
		}
		return nil, translateStorage(err)
	}
	return e, nil
}

func (s *VerificationService) MarkDecided(ctx context.Context, customerID, staffID int64) error {
	if err := s.repomanager.Verifications(s.db).MarkDecided(ctx, customerID, staffID, s.now()); err != nil {
		s.logger.Error(ctx, "queue entry update failed", "customer_id", customerID, "error", err)
		return translateStorage(err)
	}
	return nil
}

func (s *VerificationService) CountOpen(ctx context.Context) (int, error) {
	n, err := s.repomanager.Verifications(s.db).CountOpen(ctx)
	if err != nil {
		s.logger.Error(ctx, "queue count failed", "error", err)
		return 0, translateStorage(err)
	}
	return n, nil
}

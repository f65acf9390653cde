package verifications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

// Repository tracks which staff-channel message announced which customer.
type Repository interface {
	Add(ctx context.Context, e *models.QueueEntry) (*models.QueueEntry, error)
	GetByMessage(ctx context.Context, channelID int64, messageID int) (*models.QueueEntry, error)
	MarkDecided(ctx context.Context, customerID int64, decidedBy int64, at time.Time) error
	CountOpen(ctx context.Context) (int, error)
}

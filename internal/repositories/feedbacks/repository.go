package feedbacks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error)
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	SetReply(ctx context.Context, id int64, reply string, at time.Time) error
}

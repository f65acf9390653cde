package customers

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

// Repository persists customer records. Lookups other than GetByID only see
// active records; absence is reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error)
	GetByClientCode(ctx context.Context, code string) (*models.Customer, error)
	GetByClientCodeOrPinfl(ctx context.Context, code, pinfl string) (*models.Customer, error)
	FindForLogin(ctx context.Context, code, phoneQuery string) (*models.Customer, error)
	Search(ctx context.Context, query, phoneQuery string, limit int) ([]models.Customer, error)
	ListClientCodes(ctx context.Context, prefix string) ([]string, error)
	ListApproved(ctx context.Context) ([]models.Customer, error)
	CountByStatus(ctx context.Context) (models.StatusCounts, error)

	UpdateStatus(ctx context.Context, id int64, status models.VerificationStatus, reason *string, verifiedAt *time.Time) error
	UpdateImported(ctx context.Context, c *models.Customer) error
	TouchLogin(ctx context.Context, id int64, at time.Time) error
	AttachTelegram(ctx context.Context, id, telegramID int64, username string) error
	SetLanguage(ctx context.Context, id int64, lang models.Language) error
	ConfirmAddress(ctx context.Context, id int64) error
	SetArchiveKeys(ctx context.Context, id int64, front, back string) error
	Deactivate(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

package shipments

import (
	"context"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

type Repository interface {
	DeleteAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, s *models.Shipment) error
	GetByTrackingCode(ctx context.Context, code string) ([]models.Shipment, error)
	ListByCustomerCode(ctx context.Context, code string) ([]models.Shipment, error)
	Count(ctx context.Context) (int, error)
}

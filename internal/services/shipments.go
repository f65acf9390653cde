package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
)

type ShipmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewShipmentService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ShipmentService {
	return &ShipmentService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "shipments"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ReplaceAll deletes every shipment and stores rows in their place within
// one transaction. It returns the number of rows stored.
func (s *ShipmentService) ReplaceAll(ctx context.Context, rows []models.Shipment) (int, error) {
	err := dbx.WithTx(ctx, s.db, s.logger, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Shipments(tx)
		if _, err := repo.DeleteAll(ctx); err != nil {
			return err
		}

		now := s.now()
		for i := range rows {
			if rows[i].CreatedAt.IsZero() {
				rows[i].CreatedAt = now
			}
			if err := repo.Insert(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "shipment replace failed", "rows", len(rows), "error", err)
		return 0, translateStorage(err)
	}

	s.logger.Info(ctx, "shipments replaced", "rows", len(rows))
	return len(rows), nil
}

func (s *ShipmentService) Track(ctx context.Context, trackingCode string) ([]models.Shipment, error) {
	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return nil, nil
	}
	list, err := s.repomanager.Shipments(s.db).GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		s.logger.Error(ctx, "shipment lookup failed", "tracking_code", trackingCode, "error", err)
		return nil, translateStorage(err)
	}
	return list, nil
}

func (s *ShipmentService) ForCustomer(ctx context.Context, clientCode string) ([]models.Shipment, error) {
	list, err := s.repomanager.Shipments(s.db).ListByCustomerCode(ctx, clientCode)
	if err != nil {
		s.logger.Error(ctx, "shipment lookup failed", "client_code", clientCode, "error", err)
		return nil, translateStorage(err)
	}
	return list, nil
}

func (s *ShipmentService) Count(ctx context.Context) (int, error) {
	n, err := s.repomanager.Shipments(s.db).Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "shipment count failed", "error", err)
		return 0, translateStorage(err)
	}
	return n, nil
}

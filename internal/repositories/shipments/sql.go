// Package shipments stores the shipment list that operators replace
// wholesale on every upload.
package shipments

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/models"
)

const columns = `id, tracking_code, shipping_name, package_number, weight, quantity, flight, customer_code, created_at`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shipments`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Insert(ctx context.Context, s *models.Shipment) error {
	query := `INSERT INTO shipments (tracking_code, shipping_name, package_number, weight, quantity, flight, customer_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.TrackingCode, s.ShippingName, s.PackageNumber, s.Weight, s.Quantity, s.Flight, s.CustomerCode, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByTrackingCode matches the trimmed code case-insensitively.
func (r *SQLRepository) GetByTrackingCode(ctx context.Context, code string) ([]models.Shipment, error) {
	return r.list(ctx, `SELECT `+columns+` FROM shipments WHERE UPPER(tracking_code) = UPPER(?) ORDER BY created_at DESC, id DESC`,
		strings.TrimSpace(code))
}

func (r *SQLRepository) ListByCustomerCode(ctx context.Context, code string) ([]models.Shipment, error) {
	return r.list(ctx, `SELECT `+columns+` FROM shipments WHERE UPPER(customer_code) = UPPER(?) ORDER BY created_at DESC, id DESC`,
		strings.TrimSpace(code))
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shipments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]models.Shipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Shipment
	for rows.Next() {
		var s models.Shipment
		if err := rows.Scan(&s.ID, &s.TrackingCode, &s.ShippingName, &s.PackageNumber, &s.Weight,
			&s.Quantity, &s.Flight, &s.CustomerCode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

package verifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/models"
)

const columns = `id, customer_id, channel_id, message_id, submitted_at, decided_at, decided_by`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Add(ctx context.Context, e *models.QueueEntry) (*models.QueueEntry, error) {
	query := `INSERT INTO verification_queue (customer_id, channel_id, message_id, submitted_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, e.CustomerID, e.ChannelID, e.MessageID, e.SubmittedAt).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *SQLRepository) GetByMessage(ctx context.Context, channelID int64, messageID int) (*models.QueueEntry, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM verification_queue WHERE channel_id = ? AND message_id = ?`,
		channelID, messageID)
}

// MarkDecided closes every open entry of the customer.
func (r *SQLRepository) MarkDecided(ctx context.Context, customerID int64, decidedBy int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE verification_queue SET decided_at = ?, decided_by = ? WHERE customer_id = ? AND decided_at IS NULL`,
		at, decidedBy, customerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) CountOpen(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verification_queue WHERE decided_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, args ...any) (*models.QueueEntry, error) {
	var (
		e         models.QueueEntry
		decidedAt sql.NullTime
		decidedBy sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.CustomerID, &e.ChannelID, &e.MessageID, &e.SubmittedAt, &decidedAt, &decidedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if decidedAt.Valid {
		e.DecidedAt = &decidedAt.Time
	}
	if decidedBy.Valid {
		e.DecidedBy = &decidedBy.Int64
	}
	return &e, nil
}

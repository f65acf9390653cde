package feedbacks

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

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	query := `INSERT INTO feedbacks (customer_id, telegram_id, message, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, f.CustomerID, f.TelegramID, f.Message, f.CreatedAt).Scan(&f.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := `SELECT id, customer_id, telegram_id, message, reply, replied_at, created_at
		FROM feedbacks WHERE id = ?`

	var (
		f          models.Feedback
		customerID sql.NullInt64
		reply      sql.NullString
		repliedAt  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &customerID, &f.TelegramID, &f.Message, &reply, &repliedAt, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if customerID.Valid {
		f.CustomerID = &customerID.Int64
	}
	if reply.Valid {
		f.Reply = &reply.String
	}
	if repliedAt.Valid {
		f.RepliedAt = &repliedAt.Time
	}
	return &f, nil
}

func (r *SQLRepository) SetReply(ctx context.Context, id int64, reply string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE feedbacks SET reply = ?, replied_at = ? WHERE id = ?`, reply, at, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Package customers stores customer records. Queries use '?' placeholders
// and run unchanged on SQLite; repomanager binds them for PostgreSQL.
package customers

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

const columns = `id, telegram_id, username, client_code, full_name, phone, document_number,
	birth_date, document_expiry, pinfl, address, address_confirmed, document_type,
	front_image_id, back_image_id, front_archive_key, back_archive_key, status,
	rejection_reason, is_active, language, registered_at, verified_at, last_login_at`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*models.Customer, error) {
	var (
		c          models.Customer
		telegramID sql.NullInt64
		expiry     sql.NullString
		reason     sql.NullString
		verifiedAt sql.NullTime
		lastLogin  sql.NullTime
		docType    string
		status     string
		lang       string
	)

	err := s.Scan(&c.ID, &telegramID, &c.Username, &c.ClientCode, &c.FullName, &c.Phone, &c.DocumentNumber,
		&c.BirthDate, &expiry, &c.Pinfl, &c.Address, &c.AddressConfirmed, &docType,
		&c.FrontImageID, &c.BackImageID, &c.FrontArchiveKey, &c.BackArchiveKey, &status,
		&reason, &c.IsActive, &lang, &c.RegisteredAt, &verifiedAt, &lastLogin)
	if err != nil {
		return nil, err
	}

	if telegramID.Valid {
		c.TelegramID = &telegramID.Int64
	}
	if expiry.Valid {
		c.DocumentExpiry = &expiry.String
	}
	if reason.Valid {
		c.RejectionReason = &reason.String
	}
	if verifiedAt.Valid {
		c.VerifiedAt = &verifiedAt.Time
	}
	if lastLogin.Valid {
		c.LastLoginAt = &lastLogin.Time
	}
	c.DocumentType = models.DocumentType(docType)
	c.Status = models.VerificationStatus(status)
	c.Language = models.ParseLanguage(lang)

	return &c, nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, args ...any) (*models.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Create inserts c and fills in its generated ID.
func (r *SQLRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers (telegram_id, username, client_code, full_name, phone, document_number,
		birth_date, document_expiry, pinfl, address, address_confirmed, document_type,
		front_image_id, back_image_id, status, rejection_reason, is_active, language,
		registered_at, verified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		c.TelegramID, c.Username, c.ClientCode, c.FullName, c.Phone, c.DocumentNumber,
		c.BirthDate, c.DocumentExpiry, c.Pinfl, c.Address, c.AddressConfirmed, string(c.DocumentType),
		c.FrontImageID, c.BackImageID, string(c.Status), c.RejectionReason, c.IsActive, string(c.Language),
		c.RegisteredAt, c.VerifiedAt).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM customers WHERE id = ?`, id)
}

func (r *SQLRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM customers
		WHERE telegram_id = ? AND is_active = ?
		ORDER BY id DESC LIMIT 1`, telegramID, true)
}

func (r *SQLRepository) GetByClientCode(ctx context.Context, code string) (*models.Customer, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM customers
		WHERE UPPER(client_code) = UPPER(?) AND is_active = ?`, code, true)
}

// GetByClientCodeOrPinfl prefers a client code match over a PINFL match.
func (r *SQLRepository) GetByClientCodeOrPinfl(ctx context.Context, code, pinfl string) (*models.Customer, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM customers
		WHERE UPPER(client_code) = UPPER(?) OR (pinfl <> '' AND pinfl = ?)
		ORDER BY CASE WHEN UPPER(client_code) = UPPER(?) THEN 0 ELSE 1 END, id DESC
		LIMIT 1`, code, pinfl, code)
}

// FindForLogin matches an active record by client code and a phone substring.
func (r *SQLRepository) FindForLogin(ctx context.Context, code, phoneQuery string) (*models.Customer, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM customers
		WHERE UPPER(client_code) = UPPER(?) AND phone LIKE ? AND is_active = ?`,
		code, "%"+phoneQuery+"%", true)
}

// Search returns active records whose client code equals query or whose
// phone contains phoneQuery, newest first.
func (r *SQLRepository) Search(ctx context.Context, query, phoneQuery string, limit int) ([]models.Customer, error) {
	phonePattern := "%" + phoneQuery + "%"
	if phoneQuery == "" {
		phonePattern = ""
	}
	return r.list(ctx, `SELECT `+columns+` FROM customers
		WHERE is_active = ? AND (UPPER(client_code) = UPPER(?) OR phone LIKE ?)
		ORDER BY registered_at DESC, id DESC
		LIMIT ?`, true, query, phonePattern, limit)
}

// ListClientCodes returns every code (active or not) that starts with prefix,
// compared case-insensitively.
func (r *SQLRepository) ListClientCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT client_code FROM customers WHERE UPPER(client_code) LIKE UPPER(?)`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return codes, nil
}

func (r *SQLRepository) ListApproved(ctx context.Context) ([]models.Customer, error) {
	return r.list(ctx, `SELECT `+columns+` FROM customers
		WHERE status = ? AND is_active = ? AND telegram_id IS NOT NULL
		ORDER BY id`, string(models.StatusApproved), true)
}

func (r *SQLRepository) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	var counts models.StatusCounts

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM customers WHERE is_active = ? GROUP BY status`, true)
	if err != nil {
		return counts, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return counts, fmt.Errorf("db error: %w", err)
		}
		switch models.VerificationStatus(status) {
		case models.StatusPending:
			counts.Pending = n
		case models.StatusApproved:
			counts.Approved = n
		case models.StatusRejected:
			counts.Rejected = n
		}
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("db error: %w", err)
	}
	return counts, nil
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, id int64, status models.VerificationStatus, reason *string, verifiedAt *time.Time) error {
	return r.execOne(ctx, `UPDATE customers SET status = ?, rejection_reason = ?, verified_at = ? WHERE id = ?`,
		string(status), reason, verifiedAt, id)
}

// UpdateImported overwrites the fields a bulk import owns and marks the
// record approved and active. A record that was inactive loses its chat user,
// which may already own a newer active record.
func (r *SQLRepository) UpdateImported(ctx context.Context, c *models.Customer) error {
	return r.execOne(ctx, `UPDATE customers SET full_name = ?, document_number = ?, birth_date = ?,
		address = ?, phone = ?, pinfl = ?, status = ?, rejection_reason = NULL, verified_at = ?,
		telegram_id = CASE WHEN is_active THEN telegram_id ELSE NULL END, is_active = ?
		WHERE id = ?`,
		c.FullName, c.DocumentNumber, c.BirthDate, c.Address, c.Phone, c.Pinfl,
		string(models.StatusApproved), c.VerifiedAt, true, c.ID)
}

func (r *SQLRepository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, `UPDATE customers SET last_login_at = ? WHERE id = ?`, at, id)
}

func (r *SQLRepository) AttachTelegram(ctx context.Context, id, telegramID int64, username string) error {
	return r.execOne(ctx, `UPDATE customers SET telegram_id = ?, username = ? WHERE id = ?`, telegramID, username, id)
}

func (r *SQLRepository) SetLanguage(ctx context.Context, id int64, lang models.Language) error {
	return r.execOne(ctx, `UPDATE customers SET language = ? WHERE id = ?`, string(lang), id)
}

func (r *SQLRepository) ConfirmAddress(ctx context.Context, id int64) error {
	return r.execOne(ctx, `UPDATE customers SET address_confirmed = ? WHERE id = ?`, true, id)
}

func (r *SQLRepository) SetArchiveKeys(ctx context.Context, id int64, front, back string) error {
	return r.execOne(ctx, `UPDATE customers SET front_archive_key = ?, back_archive_key = ? WHERE id = ?`, front, back, id)
}

func (r *SQLRepository) Deactivate(ctx context.Context, id int64) error {
	return r.execOne(ctx, `UPDATE customers SET is_active = ? WHERE id = ?`, false, id)
}

// DeleteAll removes every customer together with their queue entries and
// detaches their feedback. It returns the number of customers removed.
func (r *SQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM verification_queue`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE feedbacks SET customer_id = NULL`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// execOne runs an update that must touch exactly one row.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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

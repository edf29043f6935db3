package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const depositColumns = `d.id, d.user_id, u.email, d.payment_method_id, d.amount, d.tx_hash,
	d.status, d.admin_note, d.created_at, d.processed_at`

// DepositRepository yatırım talepleri database işlemleri
type DepositRepository struct {
	db db.DBTX
}

// NewDepositRepository yeni repository oluşturur
func NewDepositRepository(database db.DBTX) *DepositRepository {
	return &DepositRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *DepositRepository) WithTx(tx *sql.Tx) *DepositRepository {
	return &DepositRepository{db: tx}
}

func scanDeposit(row scanner) (*models.Deposit, error) {
	d := &models.Deposit{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.UserEmail, &d.PaymentMethodID, &d.Amount, &d.TxHash,
		&d.Status, &d.AdminNote, &d.CreatedAt, &d.ProcessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

// Create yeni yatırım talebi oluşturur (pending)
func (r *DepositRepository) Create(ctx context.Context, userID int, req *models.CreateDepositRequest) (*models.Deposit, error) {
	query := `
		WITH d AS (
			INSERT INTO deposits (user_id, payment_method_id, amount, tx_hash, status)
			VALUES ($1, $2, $3, $4, 'pending')
			RETURNING *
		)
		SELECT ` + depositColumns + ` FROM d JOIN users u ON u.id = d.user_id`

	d, err := scanDeposit(r.db.QueryRowContext(ctx, query, userID, req.PaymentMethodID, req.Amount, req.TxHash))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("yatırım talebi oluşturulamadı: %w", err)
	}
	return d, nil
}

// GetByID ID ile yatırım getirir
func (r *DepositRepository) GetByID(ctx context.Context, id int) (*models.Deposit, error) {
	d, err := scanDeposit(r.db.QueryRowContext(ctx,
		`SELECT `+depositColumns+` FROM deposits d JOIN users u ON u.id = d.user_id WHERE d.id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("yatırım sorgusu hatası: %w", err)
	}
	return d, err
}

// MarkProcessed bekleyen yatırımı tek sorguda onaylar/reddeder.
// Kayıt beklemede değilse (veya yoksa) ErrNotPending döner.
func (r *DepositRepository) MarkProcessed(ctx context.Context, id int, status, note string) (*models.Deposit, error) {
	query := `
		WITH d AS (
			UPDATE deposits SET status = $2, admin_note = $3, processed_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + depositColumns + ` FROM d JOIN users u ON u.id = d.user_id`

	d, err := scanDeposit(r.db.QueryRowContext(ctx, query, id, status, note))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("yatırım güncellenemedi: %w", err)
	}
	return d, nil
}

// List yatırımları listeler. userID 0 ise tüm kullanıcılar, status boşsa tüm durumlar.
func (r *DepositRepository) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Deposit, int, error) {
	limit, offset = NormalizePage(limit, offset)
	where := `($1 = 0 OR d.user_id = $1) AND ($2 = '' OR d.status = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deposits d WHERE `+where, userID, status,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("yatırım sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+depositColumns+`
		FROM deposits d JOIN users u ON u.id = d.user_id
		WHERE `+where+`
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $3 OFFSET $4`, userID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("yatırımlar listelenemedi: %w", err)
	}
	defer rows.Close()

	deposits := []*models.Deposit{}
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("yatırım scan hatası: %w", err)
		}
		deposits = append(deposits, d)
	}
	return deposits, total, rows.Err()
}

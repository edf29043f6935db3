package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const withdrawalColumns = `w.id, w.user_id, u.email, w.payment_method_id, w.amount, w.fee,
	w.wallet_address, w.status, w.tx_hash, w.admin_note, w.created_at, w.processed_at`

// WithdrawalRepository çekim talepleri database işlemleri
type WithdrawalRepository struct {
	db db.DBTX
}

// NewWithdrawalRepository yeni repository oluşturur
func NewWithdrawalRepository(database db.DBTX) *WithdrawalRepository {
	return &WithdrawalRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *WithdrawalRepository) WithTx(tx *sql.Tx) *WithdrawalRepository {
	return &WithdrawalRepository{db: tx}
}

func scanWithdrawal(row scanner) (*models.Withdrawal, error) {
	w := &models.Withdrawal{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.UserEmail, &w.PaymentMethodID, &w.Amount, &w.Fee,
		&w.WalletAddress, &w.Status, &w.TxHash, &w.AdminNote, &w.CreatedAt, &w.ProcessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

// Create çekim talebini kaydeder. Bakiye düşümü çağıranın transaction'ında yapılır.
func (r *WithdrawalRepository) Create(ctx context.Context, userID int, req *models.CreateWithdrawalRequest, fee decimal.Decimal) (*models.Withdrawal, error) {
	query := `
		WITH w AS (
			INSERT INTO withdrawals (user_id, payment_method_id, amount, fee, wallet_address, status)
			VALUES ($1, $2, $3, $4, $5, 'pending')
			RETURNING *
		)
		SELECT ` + withdrawalColumns + ` FROM w JOIN users u ON u.id = w.user_id`

	w, err := scanWithdrawal(r.db.QueryRowContext(ctx, query,
		userID, req.PaymentMethodID, req.Amount, fee, req.WalletAddress))
	if err != nil {
		return nil, fmt.Errorf("çekim talebi oluşturulamadı: %w", err)
	}
	return w, nil
}

// GetByID ID ile çekim getirir
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int) (*models.Withdrawal, error) {
	w, err := scanWithdrawal(r.db.QueryRowContext(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals w JOIN users u ON u.id = w.user_id WHERE w.id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("çekim sorgusu hatası: %w", err)
	}
	return w, err
}

// MarkProcessed bekleyen çekimi tek sorguda onaylar/reddeder.
// Kayıt beklemede değilse (veya yoksa) ErrNotPending döner.
func (r *WithdrawalRepository) MarkProcessed(ctx context.Context, id int, status, txHash, note string) (*models.Withdrawal, error) {
	query := `
		WITH w AS (
			UPDATE withdrawals SET status = $2, tx_hash = $3, admin_note = $4, processed_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + withdrawalColumns + ` FROM w JOIN users u ON u.id = w.user_id`

	w, err := scanWithdrawal(r.db.QueryRowContext(ctx, query, id, status, txHash, note))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("çekim güncellenemedi: %w", err)
	}
	return w, nil
}

// List çekimleri listeler. userID 0 ise tüm kullanıcılar, status boşsa tüm durumlar.
func (r *WithdrawalRepository) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Withdrawal, int, error) {
	limit, offset = NormalizePage(limit, offset)
	where := `($1 = 0 OR w.user_id = $1) AND ($2 = '' OR w.status = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM withdrawals w WHERE `+where, userID, status,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("çekim sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals w JOIN users u ON u.id = w.user_id
		WHERE `+where+`
		ORDER BY w.created_at DESC, w.id DESC
		LIMIT $3 OFFSET $4`, userID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("çekimler listelenemedi: %w", err)
	}
	defer rows.Close()

	withdrawals := []*models.Withdrawal{}
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("çekim scan hatası: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, total, rows.Err()
}

// SumPendingByUser kullanıcının bekleyen çekimlerinin toplam tutarı
func (r *WithdrawalRepository) SumPendingByUser(ctx context.Context, userID int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE user_id = $1 AND status = 'pending'`, userID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bekleyen çekimler toplanamadı: %w", err)
	}
	return sum, nil
}

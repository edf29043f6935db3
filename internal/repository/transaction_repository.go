package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const transactionColumns = `id, user_id, type, amount, description, reference_id, created_at`

// TransactionRepository bakiye hareketleri. Kayıtlar sadece eklenir, güncellenmez.
type TransactionRepository struct {
	db db.DBTX
}

// NewTransactionRepository yeni repository oluşturur
func NewTransactionRepository(database db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

// Create yeni ledger kaydı ekler. amount işaretlidir (çıkışlar negatif).
func (r *TransactionRepository) Create(ctx context.Context, userID int, txType string, amount decimal.Decimal, description string, referenceID *int) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, description, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns

	t := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, userID, txType, amount, description, referenceID).Scan(
		&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.ReferenceID, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("transaction kaydı oluşturulamadı: %w", err)
	}
	return t, nil
}

// List hareketleri listeler. userID 0 ise tüm kullanıcılar, txType boşsa tüm tipler.
func (r *TransactionRepository) List(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error) {
	limit, offset = NormalizePage(limit, offset)
	where := `($1 = 0 OR user_id = $1) AND ($2 = '' OR type = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, userID, txType).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("transaction sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, userID, txType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transaction'lar listelenemedi: %w", err)
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		t := &models.Transaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("transaction scan hatası: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const paymentMethodColumns = `id, name, currency, network, wallet_address, min_deposit, status, created_at`

// PaymentMethodRepository ödeme yöntemleri database işlemleri
type PaymentMethodRepository struct {
	db db.DBTX
}

// NewPaymentMethodRepository yeni repository oluşturur
func NewPaymentMethodRepository(database db.DBTX) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: database}
}

func scanPaymentMethod(row scanner) (*models.PaymentMethod, error) {
	p := &models.PaymentMethod{}
	err := row.Scan(&p.ID, &p.Name, &p.Currency, &p.Network, &p.WalletAddress, &p.MinDeposit, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PaymentMethodRepository) list(ctx context.Context, activeOnly bool) ([]*models.PaymentMethod, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentMethodColumns+` FROM payment_methods
		WHERE (NOT $1 OR status = 'active')
		ORDER BY id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("ödeme yöntemleri listelenemedi: %w", err)
	}
	defer rows.Close()

	methods := []*models.PaymentMethod{}
	for rows.Next() {
		p, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("ödeme yöntemi scan hatası: %w", err)
		}
		methods = append(methods, p)
	}
	return methods, rows.Err()
}

// ListActive kullanıcıya gösterilen yöntemler
func (r *PaymentMethodRepository) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	return r.list(ctx, true)
}

// ListAll admin için tüm yöntemler
func (r *PaymentMethodRepository) ListAll(ctx context.Context) ([]*models.PaymentMethod, error) {
	return r.list(ctx, false)
}

// GetByID ID ile yöntem getirir
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id int) (*models.PaymentMethod, error) {
	p, err := scanPaymentMethod(r.db.QueryRowContext(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("ödeme yöntemi sorgusu hatası: %w", err)
	}
	return p, err
}

// Create yeni yöntem ekler
func (r *PaymentMethodRepository) Create(ctx context.Context, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	p, err := scanPaymentMethod(r.db.QueryRowContext(ctx, `
		INSERT INTO payment_methods (name, currency, network, wallet_address, min_deposit, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+paymentMethodColumns,
		req.Name, req.Currency, req.Network, req.WalletAddress, req.MinDeposit, req.Status))
	if err != nil {
		return nil, fmt.Errorf("ödeme yöntemi oluşturulamadı: %w", err)
	}
	return p, nil
}

// Update yöntemi günceller
func (r *PaymentMethodRepository) Update(ctx context.Context, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	p, err := scanPaymentMethod(r.db.QueryRowContext(ctx, `
		UPDATE payment_methods
		SET name = $2, currency = $3, network = $4, wallet_address = $5, min_deposit = $6, status = $7
		WHERE id = $1
		RETURNING `+paymentMethodColumns,
		id, req.Name, req.Currency, req.Network, req.WalletAddress, req.MinDeposit, req.Status))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("ödeme yöntemi güncellenemedi: %w", err)
	}
	return p, err
}

// Delete yöntemi siler. Geçmiş yatırımlarda kullanılmışsa pasife alınır.
func (r *PaymentMethodRepository) Delete(ctx context.Context, id int) error {
	var used bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM deposits WHERE payment_method_id = $1)`, id).Scan(&used); err != nil {
		return fmt.Errorf("ödeme yöntemi kullanımı kontrol edilemedi: %w", err)
	}

	query := `DELETE FROM payment_methods WHERE id = $1`
	if used {
		query = `UPDATE payment_methods SET status = 'inactive' WHERE id = $1`
	}

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ödeme yöntemi silinemedi: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

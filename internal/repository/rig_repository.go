package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const rigColumns = `id, name, description, price, daily_earning, duration, duration_unit,
	hash_rate, max_purchase, is_free, status, created_at, updated_at`

// RigRepository rig (plan) database işlemleri
type RigRepository struct {
	db db.DBTX
}

// NewRigRepository yeni repository oluşturur
func NewRigRepository(database db.DBTX) *RigRepository {
	return &RigRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *RigRepository) WithTx(tx *sql.Tx) *RigRepository {
	return &RigRepository{db: tx}
}

func scanRig(row scanner) (*models.Rig, error) {
	rig := &models.Rig{}
	err := row.Scan(
		&rig.ID, &rig.Name, &rig.Description, &rig.Price, &rig.DailyEarning,
		&rig.Duration, &rig.DurationUnit, &rig.HashRate, &rig.MaxPurchase,
		&rig.IsFree, &rig.Status, &rig.CreatedAt, &rig.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rig, err
}

func (r *RigRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Rig, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rig'ler listelenemedi: %w", err)
	}
	defer rows.Close()

	rigs := []*models.Rig{}
	for rows.Next() {
		rig, err := scanRig(rows)
		if err != nil {
			return nil, fmt.Errorf("rig scan hatası: %w", err)
		}
		rigs = append(rigs, rig)
	}
	return rigs, rows.Err()
}

// ListActive satışta olan rig'leri fiyata göre listeler
func (r *RigRepository) ListActive(ctx context.Context) ([]*models.Rig, error) {
	return r.list(ctx, `SELECT `+rigColumns+` FROM rigs WHERE status = 'active' ORDER BY price ASC, id ASC`)
}

// ListAll tüm rig'leri listeler (admin)
func (r *RigRepository) ListAll(ctx context.Context) ([]*models.Rig, error) {
	return r.list(ctx, `SELECT `+rigColumns+` FROM rigs ORDER BY id ASC`)
}

// GetByID ID ile rig getirir
func (r *RigRepository) GetByID(ctx context.Context, id int) (*models.Rig, error) {
	rig, err := scanRig(r.db.QueryRowContext(ctx, `SELECT `+rigColumns+` FROM rigs WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("rig sorgusu hatası: %w", err)
	}
	return rig, err
}

// Create yeni rig oluşturur
func (r *RigRepository) Create(ctx context.Context, req *models.RigRequest) (*models.Rig, error) {
	query := `
		INSERT INTO rigs (name, description, price, daily_earning, duration, duration_unit,
			hash_rate, max_purchase, is_free, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + rigColumns

	rig, err := scanRig(r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.Price, req.DailyEarning, req.Duration, req.DurationUnit,
		req.HashRate, req.MaxPurchase, req.IsFree, req.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("rig oluşturulamadı: %w", err)
	}
	return rig, nil
}

// Update rig'i günceller
func (r *RigRepository) Update(ctx context.Context, id int, req *models.RigRequest) (*models.Rig, error) {
	query := `
		UPDATE rigs SET name = $1, description = $2, price = $3, daily_earning = $4, duration = $5,
			duration_unit = $6, hash_rate = $7, max_purchase = $8, is_free = $9, status = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING ` + rigColumns

	rig, err := scanRig(r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.Price, req.DailyEarning, req.Duration, req.DurationUnit,
		req.HashRate, req.MaxPurchase, req.IsFree, req.Status, id,
	))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("rig güncellenemedi: %w", err)
	}
	return rig, err
}

// Deactivate rig'i satıştan kaldırır. Satın alınmış rig'ler etkilenmez.
func (r *RigRepository) Deactivate(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rigs SET status = 'inactive', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rig pasifleştirilemedi: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const userRigColumns = `ur.id, ur.user_id, ur.rig_id, r.name, ur.price_paid, ur.daily_earning,
	ur.purchased_at, ur.expires_at, ur.last_mined_at, ur.total_earned, ur.status`

// UserRigRepository kullanıcı rig'leri database işlemleri
type UserRigRepository struct {
	db db.DBTX
}

// NewUserRigRepository yeni repository oluşturur
func NewUserRigRepository(database db.DBTX) *UserRigRepository {
	return &UserRigRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *UserRigRepository) WithTx(tx *sql.Tx) *UserRigRepository {
	return &UserRigRepository{db: tx}
}

func scanUserRig(row scanner) (*models.UserRig, error) {
	ur := &models.UserRig{}
	err := row.Scan(
		&ur.ID, &ur.UserID, &ur.RigID, &ur.RigName, &ur.PricePaid, &ur.DailyEarning,
		&ur.PurchasedAt, &ur.ExpiresAt, &ur.LastMinedAt, &ur.TotalEarned, &ur.Status,
	)
	return ur, err
}

func (r *UserRigRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.UserRig, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı rig'leri listelenemedi: %w", err)
	}
	defer rows.Close()

	rigs := []*models.UserRig{}
	for rows.Next() {
		ur, err := scanUserRig(rows)
		if err != nil {
			return nil, fmt.Errorf("kullanıcı rig scan hatası: %w", err)
		}
		rigs = append(rigs, ur)
	}
	return rigs, rows.Err()
}

// Create satın alınan rig'i kaydeder
func (r *UserRigRepository) Create(ctx context.Context, ur *models.UserRig) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_rigs (user_id, rig_id, price_paid, daily_earning, purchased_at, expires_at, last_mined_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $5, 'active')
		RETURNING id`,
		ur.UserID, ur.RigID, ur.PricePaid, ur.DailyEarning, ur.PurchasedAt, ur.ExpiresAt,
	).Scan(&ur.ID)
	if err != nil {
		return fmt.Errorf("kullanıcı rig'i kaydedilemedi: %w", err)
	}

	ur.LastMinedAt = ur.PurchasedAt
	ur.TotalEarned = decimal.Zero
	ur.Status = models.UserRigStatusActive
	return nil
}

// CountByUserAndRig kullanıcının bu rig'den kaç adet aldığını sayar (süresi dolanlar dahil)
func (r *UserRigRepository) CountByUserAndRig(ctx context.Context, userID, rigID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_rigs WHERE user_id = $1 AND rig_id = $2`, userID, rigID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rig sayısı alınamadı: %w", err)
	}
	return count, nil
}

// ListByUser kullanıcının tüm rig'lerini listeler
func (r *UserRigRepository) ListByUser(ctx context.Context, userID int) ([]*models.UserRig, error) {
	return r.list(ctx, `
		SELECT `+userRigColumns+`
		FROM user_rigs ur JOIN rigs r ON r.id = ur.rig_id
		WHERE ur.user_id = $1
		ORDER BY ur.purchased_at DESC`, userID)
}

// ListActiveByUserForUpdate aktif rig'leri kilitleyerek listeler (kazanç toplama)
func (r *UserRigRepository) ListActiveByUserForUpdate(ctx context.Context, userID int) ([]*models.UserRig, error) {
	return r.list(ctx, `
		SELECT `+userRigColumns+`
		FROM user_rigs ur JOIN rigs r ON r.id = ur.rig_id
		WHERE ur.user_id = $1 AND ur.status = 'active'
		ORDER BY ur.id
		FOR UPDATE OF ur`, userID)
}

// ListActiveByUser aktif rig'leri kilitsiz listeler (dashboard tahmini)
func (r *UserRigRepository) ListActiveByUser(ctx context.Context, userID int) ([]*models.UserRig, error) {
	return r.list(ctx, `
		SELECT `+userRigColumns+`
		FROM user_rigs ur JOIN rigs r ON r.id = ur.rig_id
		WHERE ur.user_id = $1 AND ur.status = 'active'
		ORDER BY ur.id`, userID)
}

// RecordMining toplanan kazancı rig'e işler ve gerekirse süresini doldurur
func (r *UserRigRepository) RecordMining(ctx context.Context, id int, minedUntil time.Time, earned decimal.Decimal, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_rigs SET last_mined_at = $1, total_earned = total_earned + $2, status = $3
		WHERE id = $4`, minedUntil, earned, status, id)
	if err != nil {
		return fmt.Errorf("rig kazancı kaydedilemedi: %w", err)
	}
	return nil
}

// UsersWithExpiredRigs süresi dolmuş ama hala aktif rig'i olan kullanıcıları bulur
func (r *UserRigRepository) UsersWithExpiredRigs(ctx context.Context, now time.Time, limit int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM user_rigs
		WHERE status = 'active' AND expires_at <= $1
		ORDER BY user_id
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("süresi dolan rig'ler sorgulanamadı: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package repository

import (
	"context"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// StatsRepository panel özetleri için toplu sorgular
type StatsRepository struct {
	db db.DBTX
}

// NewStatsRepository yeni repository oluşturur
func NewStatsRepository(database db.DBTX) *StatsRepository {
	return &StatsRepository{db: database}
}

// AdminStats tek sorguda platform özetini çıkarır
func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	s := &models.AdminStats{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE status = 'active'),
			(SELECT COALESCE(SUM(balance), 0) FROM users),
			(SELECT COALESCE(SUM(total_deposits), 0) FROM users),
			(SELECT COALESCE(SUM(total_withdrawals), 0) FROM users),
			(SELECT COALESCE(SUM(total_earnings), 0) FROM users),
			(SELECT COUNT(*) FROM deposits WHERE status = 'pending'),
			(SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'),
			(SELECT COUNT(*) FROM user_rigs WHERE status = 'active'),
			(SELECT COUNT(*) FROM tickets WHERE status <> 'closed')`,
	).Scan(
		&s.TotalUsers, &s.ActiveUsers, &s.TotalBalance, &s.TotalDeposits, &s.TotalWithdrawals,
		&s.TotalEarnings, &s.PendingDeposits, &s.PendingWithdrawals, &s.ActiveRigs, &s.OpenTickets,
	)
	if err != nil {
		return nil, fmt.Errorf("admin istatistikleri alınamadı: %w", err)
	}
	return s, nil
}

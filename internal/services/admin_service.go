package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// AdminService panel istatistikleri, manuel bakiye düzeltmesi ve kayıt listeleri
type AdminService struct {
	ledgerBase
	stats *repository.StatsRepository
}

// NewAdminService yeni service oluşturur
func NewAdminService(database *sql.DB) *AdminService {
	return &AdminService{
		ledgerBase: newLedgerBase(database),
		stats:      repository.NewStatsRepository(database),
	}
}

var _ interfaces.AdminServiceInterface = (*AdminService)(nil)

// Stats platform özeti
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.stats.AdminStats(ctx)
}

// AdjustBalance işaretli manuel düzeltme. Bakiye negatife düşürülemez.
func (s *AdminService) AdjustBalance(ctx context.Context, actor models.Actor, userID int, req *models.AdjustBalanceRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var user *models.User
	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		l := s.bind(tx)
		if req.Amount.IsPositive() {
			if err := l.users.AddBalance(ctx, userID, req.Amount); err != nil {
				return err
			}
		} else if err := l.debit(ctx, userID, req.Amount.Abs()); err != nil {
			return err
		}

		if err := l.record(ctx, userID, models.TxTypeAdjustment, req.Amount, req.Reason, 0); err != nil {
			return err
		}
		if err := l.notify(ctx, userID, models.NotifyBalanceAdjusted, "Bakiye güncellendi",
			fmt.Sprintf("Bakiyeniz %s değiştirildi: %s", req.Amount.String(), req.Reason)); err != nil {
			return err
		}
		if err := l.audit(ctx, actor, "user", userID, "adjust_balance",
			fmt.Sprintf("amount: %s, reason: %s", req.Amount.String(), req.Reason)); err != nil {
			return err
		}

		u, err := l.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("user_id", userID).
		Int("admin_id", actor.UserID).
		Str("amount", req.Amount.String()).
		Msg("Bakiye manuel düzeltildi")
	return user, nil
}

// ListTransactions tüm ledger hareketleri, userID/txType ile filtrelenebilir
func (s *AdminService) ListTransactions(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error) {
	return s.transactions.List(ctx, userID, txType, limit, offset)
}

// ListAuditLogs admin işlem kayıtları
func (s *AdminService) ListAuditLogs(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error) {
	return s.audits.List(ctx, entityType, limit, offset)
}

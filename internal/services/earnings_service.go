package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// EarningsService aktif rig'lerin biriken kazancını bakiyeye aktarır
type EarningsService struct {
	ledgerBase
	userRigs *repository.UserRigRepository
	now      func() time.Time
}

// NewEarningsService yeni service oluşturur
func NewEarningsService(database *sql.DB) *EarningsService {
	return &EarningsService{
		ledgerBase: newLedgerBase(database),
		userRigs:   repository.NewUserRigRepository(database),
		now:        time.Now,
	}
}

var _ interfaces.EarningsServiceInterface = (*EarningsService)(nil)

// Collect kullanıcının tüm aktif rig'lerini son toplamadan şimdiye kadar işletir.
// Süresi dolan rig'ler expired olur. Kazanç yoksa hiçbir şey yazılmaz.
func (s *EarningsService) Collect(ctx context.Context, userID int) (*models.CollectResult, error) {
	result := &models.CollectResult{Amount: decimal.Zero}

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		userRigs := s.userRigs.WithTx(tx)
		active, err := userRigs.ListActiveByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		total := decimal.Zero
		for _, ur := range active {
			earned, minedUntil := ur.Accrue(now)
			status := models.UserRigStatusActive
			if !now.Before(ur.ExpiresAt) {
				status = models.UserRigStatusExpired
				result.ExpiredRigs++
			}

			if earned.IsZero() && status == models.UserRigStatusActive {
				continue
			}
			if err := userRigs.RecordMining(ctx, ur.ID, minedUntil, earned, status); err != nil {
				return err
			}
			if earned.IsPositive() {
				result.RigCount++
				total = total.Add(earned)
			}
		}

		l := s.bind(tx)
		if total.IsPositive() {
			if err := l.users.CreditEarnings(ctx, userID, total); err != nil {
				return err
			}
			if err := l.record(ctx, userID, models.TxTypeEarning, total,
				fmt.Sprintf("%d rig'den madencilik kazancı", result.RigCount), 0); err != nil {
				return err
			}
			if err := l.notify(ctx, userID, models.NotifyEarnings, "Kazanç toplandı",
				fmt.Sprintf("%s kazanç bakiyenize eklendi.", total.String())); err != nil {
				return err
			}
		}

		balance, err := l.users.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result.Amount = total
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Amount.IsPositive() || result.ExpiredRigs > 0 {
		log.Info().
			Int("user_id", userID).
			Str("amount", result.Amount.String()).
			Int("rigs", result.RigCount).
			Int("expired", result.ExpiredRigs).
			Msg("Madencilik kazancı toplandı")
	}
	return result, nil
}

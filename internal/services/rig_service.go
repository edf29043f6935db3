package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/cache"
	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// RigService plan kataloğu, satın alma ve admin rig yönetimi
type RigService struct {
	ledgerBase
	rigs     *repository.RigRepository
	userRigs *repository.UserRigRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewRigService yeni service oluşturur
func NewRigService(database *sql.DB, c cache.Cache, cacheTTL time.Duration) *RigService {
	return &RigService{
		ledgerBase: newLedgerBase(database),
		rigs:       repository.NewRigRepository(database),
		userRigs:   repository.NewUserRigRepository(database),
		cache:      c,
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

var _ interfaces.RigServiceInterface = (*RigService)(nil)

// ListPlans satıştaki rig'ler, önbellekten
func (s *RigService) ListPlans(ctx context.Context) ([]*models.Rig, error) {
	var rigs []*models.Rig
	found, err := cache.GetJSON(ctx, s.cache, cache.KeyActivePlans, &rigs)
	if err != nil {
		log.Warn().Err(err).Msg("Plan önbelleği okunamadı")
	}
	if found {
		return s.withReturns(rigs...), nil
	}

	rigs, err = s.rigs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, cache.KeyActivePlans, rigs, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Planlar önbelleğe yazılamadı")
	}
	return s.withReturns(rigs...), nil
}

// withReturns bugünden satın alınırsa beklenen toplam kazancı doldurur
func (s *RigService) withReturns(rigs ...*models.Rig) []*models.Rig {
	now := s.now().UTC()
	for _, r := range rigs {
		r.TotalReturn = r.ExpectedReturn(now)
	}
	return rigs
}

// GetPlan satıştaki tek rig. Pasif rig'ler bulunamadı sayılır.
func (s *RigService) GetPlan(ctx context.Context, id int) (*models.Rig, error) {
	rig, err := s.rigs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rig.Status != models.RigStatusActive {
		return nil, ErrNotFound
	}
	s.withReturns(rig)
	return rig, nil
}

// Purchase rig satın alır. Kullanıcı satırı kilitlenir, böylece eşzamanlı
// istekler max_purchase limitini aşamaz.
func (s *RigService) Purchase(ctx context.Context, userID, rigID int) (*models.PurchaseResult, error) {
	result := &models.PurchaseResult{}

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		rig, err := s.rigs.WithTx(tx).GetByID(ctx, rigID)
		if err != nil {
			return err
		}
		if rig.Status != models.RigStatusActive {
			return ErrRigUnavailable
		}

		l := s.bind(tx)
		if _, err := l.users.GetByIDForUpdate(ctx, userID); err != nil {
			return err
		}

		userRigs := s.userRigs.WithTx(tx)
		owned, err := userRigs.CountByUserAndRig(ctx, userID, rigID)
		if err != nil {
			return err
		}
		if rig.PurchaseLimitReached(owned) {
			return ErrPurchaseLimit
		}

		price := rig.Price
		if rig.IsFree {
			price = decimal.Zero
		}
		if price.IsPositive() {
			if err := l.debit(ctx, userID, price); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		ur := &models.UserRig{
			UserID:       userID,
			RigID:        rig.ID,
			RigName:      rig.Name,
			PricePaid:    price,
			DailyEarning: rig.DailyEarning,
			PurchasedAt:  now,
			ExpiresAt:    rig.ExpiresAt(now),
		}
		if err := userRigs.Create(ctx, ur); err != nil {
			return err
		}

		if price.IsPositive() {
			if err := l.record(ctx, userID, models.TxTypeRigPurchase, price.Neg(),
				fmt.Sprintf("%s satın alındı", rig.Name), ur.ID); err != nil {
				return err
			}
		}
		if err := l.notify(ctx, userID, models.NotifyRigPurchased, "Rig satın alındı",
			fmt.Sprintf("%s aktif edildi, %s tarihine kadar kazanç üretecek.", rig.Name, ur.ExpiresAt.Format("2006-01-02 15:04"))); err != nil {
			return err
		}

		balance, err := l.users.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result.UserRig = ur
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("user_id", userID).
		Int("rig_id", rigID).
		Int("user_rig_id", result.UserRig.ID).
		Str("price", result.UserRig.PricePaid.String()).
		Msg("Rig satın alındı")
	return result, nil
}

// ListUserRigs kullanıcının tüm rig'leri
func (s *RigService) ListUserRigs(ctx context.Context, userID int) ([]*models.UserRig, error) {
	return s.userRigs.ListByUser(ctx, userID)
}

// ListAll admin için tüm rig'ler
func (s *RigService) ListAll(ctx context.Context) ([]*models.Rig, error) {
	return s.rigs.ListAll(ctx)
}

func (s *RigService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyActivePlans); err != nil {
		log.Warn().Err(err).Msg("Plan önbelleği temizlenemedi")
	}
}

func (s *RigService) writeAudit(ctx context.Context, actor models.Actor, rigID int, action, details string) {
	if err := s.audits.Create(ctx, auditEntry(actor, "rig", rigID, action, details)); err != nil {
		log.Error().Err(err).Int("rig_id", rigID).Msg("Audit kaydı yazılamadı")
	}
}

// Create yeni rig ekler
func (s *RigService) Create(ctx context.Context, actor models.Actor, req *models.RigRequest) (*models.Rig, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rig, err := s.rigs.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.writeAudit(ctx, actor, rig.ID, "create", rig.Name)
	return rig, nil
}

// Update rig'i günceller. Satın alınmış rig'ler satın alma anındaki değerleri korur.
func (s *RigService) Update(ctx context.Context, actor models.Actor, id int, req *models.RigRequest) (*models.Rig, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rig, err := s.rigs.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.writeAudit(ctx, actor, id, "update", rig.Name)
	return rig, nil
}

// Deactivate rig'i satıştan kaldırır (soft delete)
func (s *RigService) Deactivate(ctx context.Context, actor models.Actor, id int) error {
	if err := s.rigs.Deactivate(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.writeAudit(ctx, actor, id, "deactivate", "")
	return nil
}

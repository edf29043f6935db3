package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// WithdrawalService çekim talepleri. Tutar+ücret talep anında bakiyeden düşülür,
// red durumunda aynen iade edilir.
type WithdrawalService struct {
	ledgerBase
	withdrawals *repository.WithdrawalRepository
	methods     interfaces.PaymentMethodRepositoryInterface
	settings    interfaces.SettingReaderInterface
}

// NewWithdrawalService yeni service oluşturur
func NewWithdrawalService(database *sql.DB, methods interfaces.PaymentMethodRepositoryInterface, settings interfaces.SettingReaderInterface) *WithdrawalService {
	return &WithdrawalService{
		ledgerBase:  newLedgerBase(database),
		withdrawals: repository.NewWithdrawalRepository(database),
		methods:     methods,
		settings:    settings,
	}
}

var _ interfaces.WithdrawalServiceInterface = (*WithdrawalService)(nil)

// Create çekim talebi oluşturur ve tutar+ücreti bakiyeden düşer
func (s *WithdrawalService) Create(ctx context.Context, userID int, req *models.CreateWithdrawalRequest) (*models.Withdrawal, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PaymentMethodID != nil {
		method, err := s.methods.GetByID(ctx, *req.PaymentMethodID)
		if errors.Is(err, ErrNotFound) || (err == nil && !method.IsActive()) {
			return nil, fmt.Errorf("%w: ödeme yöntemi kullanılamıyor", ErrInvalidInput)
		}
		if err != nil {
			return nil, err
		}
	}

	minimum, err := s.settings.Decimal(ctx, models.SettingMinWithdrawal)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThan(minimum) {
		return nil, fmt.Errorf("%w: minimum çekim %s", ErrBelowMinimum, minimum.String())
	}

	feePercent, err := s.settings.Decimal(ctx, models.SettingWithdrawalFeePercent)
	if err != nil {
		return nil, err
	}
	fee := models.WithdrawalFee(req.Amount, feePercent)

	var withdrawal *models.Withdrawal
	err = db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.bind(tx).debit(ctx, userID, req.Amount.Add(fee)); err != nil {
			return err
		}

		w, err := s.withdrawals.WithTx(tx).Create(ctx, userID, req, fee)
		if err != nil {
			return err
		}
		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("withdrawal_id", withdrawal.ID).
		Int("user_id", userID).
		Str("amount", withdrawal.Amount.String()).
		Str("fee", withdrawal.Fee.String()).
		Msg("Çekim talebi oluşturuldu")
	return withdrawal, nil
}

// List çekimleri listeler, userID 0 ise tüm kullanıcılar (admin)
func (s *WithdrawalService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Withdrawal, int, error) {
	if !models.ValidRequestStatus(status) {
		return nil, 0, fmt.Errorf("%w: geçersiz durum filtresi", ErrInvalidInput)
	}
	return s.withdrawals.List(ctx, userID, status, limit, offset)
}

func (s *WithdrawalService) process(ctx context.Context, tx *sql.Tx, id int, status, txHash, note string) (*models.Withdrawal, error) {
	withdrawals := s.withdrawals.WithTx(tx)
	w, err := withdrawals.MarkProcessed(ctx, id, status, txHash, note)
	if err != nil {
		return nil, pendingError(err, func() error {
			_, err := withdrawals.GetByID(ctx, id)
			return err
		})
	}
	return w, nil
}

// Approve çekimi onaylar. Bakiye talep anında düşüldüğü için sadece toplam çekim artar.
func (s *WithdrawalService) Approve(ctx context.Context, actor models.Actor, id int, txHash string) (*models.Withdrawal, error) {
	var withdrawal *models.Withdrawal

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.process(ctx, tx, id, models.StatusApproved, txHash, "")
		if err != nil {
			return err
		}

		l := s.bind(tx)
		if err := l.users.AddTotalWithdrawals(ctx, w.UserID, w.Amount); err != nil {
			return err
		}
		if err := l.record(ctx, w.UserID, models.TxTypeWithdrawal, w.Amount.Neg(),
			fmt.Sprintf("Çekim #%d gönderildi", w.ID), w.ID); err != nil {
			return err
		}
		if err := l.notify(ctx, w.UserID, models.NotifyWithdrawalApproved, "Çekim onaylandı",
			fmt.Sprintf("%s tutarındaki çekiminiz gönderildi.", w.Amount.String())); err != nil {
			return err
		}
		if err := l.audit(ctx, actor, "withdrawal", w.ID, "approve", "tx_hash: "+txHash); err != nil {
			return err
		}

		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("withdrawal_id", id).Int("admin_id", actor.UserID).Msg("Çekim onaylandı")
	return withdrawal, nil
}

// Reject çekimi reddeder ve tutar+ücreti bakiyeye iade eder
func (s *WithdrawalService) Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Withdrawal, error) {
	var withdrawal *models.Withdrawal

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.process(ctx, tx, id, models.StatusRejected, "", note)
		if err != nil {
			return err
		}

		l := s.bind(tx)
		if err := l.users.AddBalance(ctx, w.UserID, w.Hold()); err != nil {
			return err
		}

		message := fmt.Sprintf("%s tutarındaki çekiminiz reddedildi, bakiyenize iade edildi.", w.Amount.String())
		if note != "" {
			message += " Not: " + note
		}
		if err := l.notify(ctx, w.UserID, models.NotifyWithdrawalRejected, "Çekim reddedildi", message); err != nil {
			return err
		}
		if err := l.audit(ctx, actor, "withdrawal", w.ID, "reject", note); err != nil {
			return err
		}

		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("withdrawal_id", id).Int("admin_id", actor.UserID).Msg("Çekim reddedildi, tutar iade edildi")
	return withdrawal, nil
}

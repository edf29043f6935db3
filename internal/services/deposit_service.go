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

// DepositService yatırım talepleri ve admin onayı
type DepositService struct {
	ledgerBase
	deposits *repository.DepositRepository
	methods  interfaces.PaymentMethodRepositoryInterface
	settings interfaces.SettingReaderInterface
}

// NewDepositService yeni service oluşturur
func NewDepositService(database *sql.DB, methods interfaces.PaymentMethodRepositoryInterface, settings interfaces.SettingReaderInterface) *DepositService {
	return &DepositService{
		ledgerBase: newLedgerBase(database),
		deposits:   repository.NewDepositRepository(database),
		methods:    methods,
		settings:   settings,
	}
}

var _ interfaces.DepositServiceInterface = (*DepositService)(nil)

// Create bekleyen yatırım talebi oluşturur. Bakiye admin onayına kadar değişmez.
func (s *DepositService) Create(ctx context.Context, userID int, req *models.CreateDepositRequest) (*models.Deposit, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	method, err := s.methods.GetByID(ctx, req.PaymentMethodID)
	if errors.Is(err, ErrNotFound) || (err == nil && !method.IsActive()) {
		return nil, fmt.Errorf("%w: ödeme yöntemi kullanılamıyor", ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	minimum, err := s.settings.Decimal(ctx, models.SettingMinDeposit)
	if err != nil {
		return nil, err
	}
	if method.MinDeposit.GreaterThan(minimum) {
		minimum = method.MinDeposit
	}
	if req.Amount.LessThan(minimum) {
		return nil, fmt.Errorf("%w: minimum yatırım %s", ErrBelowMinimum, minimum.String())
	}

	deposit, err := s.deposits.Create(ctx, userID, req)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("%w: bu işlem hash'i daha önce bildirilmiş", ErrAlreadyProcessed)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("deposit_id", deposit.ID).
		Int("user_id", userID).
		Str("amount", deposit.Amount.String()).
		Msg("Yatırım talebi oluşturuldu")
	return deposit, nil
}

// List yatırımları listeler, userID 0 ise tüm kullanıcılar (admin)
func (s *DepositService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Deposit, int, error) {
	if !models.ValidRequestStatus(status) {
		return nil, 0, fmt.Errorf("%w: geçersiz durum filtresi", ErrInvalidInput)
	}
	return s.deposits.List(ctx, userID, status, limit, offset)
}

// Approve bekleyen yatırımı onaylar ve tutarı bakiyeye ekler
func (s *DepositService) Approve(ctx context.Context, actor models.Actor, id int) (*models.Deposit, error) {
	var deposit *models.Deposit

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		deposits := s.deposits.WithTx(tx)
		d, err := deposits.MarkProcessed(ctx, id, models.StatusApproved, "")
		if err != nil {
			return pendingError(err, func() error {
				_, err := deposits.GetByID(ctx, id)
				return err
			})
		}

		l := s.bind(tx)
		if err := l.users.CreditDeposit(ctx, d.UserID, d.Amount); err != nil {
			return err
		}
		if err := l.record(ctx, d.UserID, models.TxTypeDeposit, d.Amount,
			fmt.Sprintf("Yatırım #%d onaylandı", d.ID), d.ID); err != nil {
			return err
		}
		if err := l.notify(ctx, d.UserID, models.NotifyDepositApproved, "Yatırım onaylandı",
			fmt.Sprintf("%s tutarındaki yatırımınız bakiyenize eklendi.", d.Amount.String())); err != nil {
			return err
		}
		if err := l.audit(ctx, actor, "deposit", d.ID, "approve", "amount: "+d.Amount.String()); err != nil {
			return err
		}

		deposit = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("deposit_id", id).Int("admin_id", actor.UserID).Msg("Yatırım onaylandı")
	return deposit, nil
}

// Reject bekleyen yatırımı reddeder. Bakiye değişmez.
func (s *DepositService) Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Deposit, error) {
	var deposit *models.Deposit

	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		deposits := s.deposits.WithTx(tx)
		d, err := deposits.MarkProcessed(ctx, id, models.StatusRejected, note)
		if err != nil {
			return pendingError(err, func() error {
				_, err := deposits.GetByID(ctx, id)
				return err
			})
		}

		l := s.bind(tx)
		message := fmt.Sprintf("%s tutarındaki yatırımınız reddedildi.", d.Amount.String())
		if note != "" {
			message += " Not: " + note
		}
		if err := l.notify(ctx, d.UserID, models.NotifyDepositRejected, "Yatırım reddedildi", message); err != nil {
			return err
		}
		if err := l.audit(ctx, actor, "deposit", d.ID, "reject", note); err != nil {
			return err
		}

		deposit = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("deposit_id", id).Int("admin_id", actor.UserID).Msg("Yatırım reddedildi")
	return deposit, nil
}

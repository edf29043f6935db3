package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const recentTransactionCount = 10

// DashboardService kullanıcı paneli için okuma tarafı
type DashboardService struct {
	users         interfaces.UserRepositoryInterface
	rigs          interfaces.UserRigReaderInterface
	withdrawals   interfaces.WithdrawalReaderInterface
	transactions  interfaces.TransactionRepositoryInterface
	notifications interfaces.NotificationRepositoryInterface
	now           func() time.Time
}

// NewDashboardService yeni service oluşturur
func NewDashboardService(
	users interfaces.UserRepositoryInterface,
	rigs interfaces.UserRigReaderInterface,
	withdrawals interfaces.WithdrawalReaderInterface,
	transactions interfaces.TransactionRepositoryInterface,
	notifications interfaces.NotificationRepositoryInterface,
) *DashboardService {
	return &DashboardService{
		users:         users,
		rigs:          rigs,
		withdrawals:   withdrawals,
		transactions:  transactions,
		notifications: notifications,
		now:           time.Now,
	}
}

var _ interfaces.DashboardServiceInterface = (*DashboardService)(nil)

// Dashboard bakiye, aktif rig'ler ve toplanmamış kazanç tahminini birleştirir.
// Sadece okur, kazanç toplamaz.
func (s *DashboardService) Dashboard(ctx context.Context, userID int) (*models.DashboardStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.rigs.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	daily, pending := decimal.Zero, decimal.Zero
	for _, ur := range active {
		if ur.ExpiresAt.After(now) {
			daily = daily.Add(ur.DailyEarning)
		}
		earned, _ := ur.Accrue(now)
		pending = pending.Add(earned)
	}

	pendingWithdrawals, err := s.withdrawals.SumPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.transactions.List(ctx, userID, "", recentTransactionCount, 0)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		User:                user,
		ActiveRigs:          len(active),
		DailyEarning:        daily,
		PendingEarnings:     pending,
		PendingWithdrawals:  pendingWithdrawals,
		RecentTransactions:  recent,
		UnreadNotifications: unread,
	}, nil
}

// Transactions kullanıcının ledger hareketleri
func (s *DashboardService) Transactions(ctx context.Context, userID int, limit, offset int) ([]*models.Transaction, int, error) {
	return s.transactions.List(ctx, userID, "", limit, offset)
}

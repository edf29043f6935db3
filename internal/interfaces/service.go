// internal/interfaces/service.go
package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/models"
)

// UserServiceInterface kullanıcı ve kimlik doğrulama business logic için interface
type UserServiceInterface interface {
	// Register yeni kullanıcı kaydeder ve token döner
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)

	// Login kullanıcı girişi yapar ve token döner
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	// Refresh süresi dolmuş token'ı yeniler
	Refresh(ctx context.Context, token string) (*models.AuthResponse, error)

	GetByID(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error

	// List admin kullanıcı listesi
	List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error)

	// AdminUpdate durum/rol günceller ve audit kaydı yazar
	AdminUpdate(ctx context.Context, actor models.Actor, userID int, req *models.AdminUpdateUserRequest) (*models.User, error)
}

// DashboardServiceInterface kullanıcı paneli özeti ve hesap hareketleri
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, userID int) (*models.DashboardStats, error)
	Transactions(ctx context.Context, userID int, limit, offset int) ([]*models.Transaction, int, error)
}

// DepositServiceInterface yatırım talepleri
type DepositServiceInterface interface {
	Create(ctx context.Context, userID int, req *models.CreateDepositRequest) (*models.Deposit, error)
	List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Deposit, int, error)
	Approve(ctx context.Context, actor models.Actor, id int) (*models.Deposit, error)
	Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Deposit, error)
}

// WithdrawalServiceInterface çekim talepleri
type WithdrawalServiceInterface interface {
	Create(ctx context.Context, userID int, req *models.CreateWithdrawalRequest) (*models.Withdrawal, error)
	List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Withdrawal, int, error)
	Approve(ctx context.Context, actor models.Actor, id int, txHash string) (*models.Withdrawal, error)
	Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Withdrawal, error)
}

// RigServiceInterface plan kataloğu ve satın alma
type RigServiceInterface interface {
	ListPlans(ctx context.Context) ([]*models.Rig, error)
	GetPlan(ctx context.Context, id int) (*models.Rig, error)
	Purchase(ctx context.Context, userID, rigID int) (*models.PurchaseResult, error)
	ListUserRigs(ctx context.Context, userID int) ([]*models.UserRig, error)

	ListAll(ctx context.Context) ([]*models.Rig, error)
	Create(ctx context.Context, actor models.Actor, req *models.RigRequest) (*models.Rig, error)
	Update(ctx context.Context, actor models.Actor, id int, req *models.RigRequest) (*models.Rig, error)
	Deactivate(ctx context.Context, actor models.Actor, id int) error
}

// EarningsServiceInterface madencilik kazancı toplama
type EarningsServiceInterface interface {
	Collect(ctx context.Context, userID int) (*models.CollectResult, error)
}

// TicketServiceInterface destek talepleri
type TicketServiceInterface interface {
	Create(ctx context.Context, userID int, req *models.CreateTicketRequest) (*models.Ticket, error)
	List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error)

	// Get sadece sahibi veya admin görebilir, mesajlarla döner
	Get(ctx context.Context, requester *models.User, id int) (*models.Ticket, error)
	Reply(ctx context.Context, requester *models.User, id int, req *models.TicketReplyRequest) (*models.TicketMessage, error)
	Close(ctx context.Context, requester *models.User, id int) error
	SetStatus(ctx context.Context, id int, status string) error
}

// NotificationServiceInterface kullanıcı bildirimleri
type NotificationServiceInterface interface {
	List(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, userID, id int) error
	MarkAllRead(ctx context.Context, userID int) (int64, error)
}

// PaymentMethodServiceInterface ödeme yöntemleri
type PaymentMethodServiceInterface interface {
	ListActive(ctx context.Context) ([]*models.PaymentMethod, error)
	ListAll(ctx context.Context) ([]*models.PaymentMethod, error)
	Create(ctx context.Context, actor models.Actor, req *models.PaymentMethodRequest) (*models.PaymentMethod, error)
	Update(ctx context.Context, actor models.Actor, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error)
	Delete(ctx context.Context, actor models.Actor, id int) error
}

// SettingReaderInterface ledger servislerinin ayar okuması
type SettingReaderInterface interface {
	Decimal(ctx context.Context, key string) (decimal.Decimal, error)
}

// SettingServiceInterface site ayarları
type SettingServiceInterface interface {
	SettingReaderInterface

	All(ctx context.Context) (map[string]string, error)
	Public(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, actor models.Actor, values map[string]string) (map[string]string, error)
}

// AdminServiceInterface admin paneli ve manuel bakiye işlemleri
type AdminServiceInterface interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	AdjustBalance(ctx context.Context, actor models.Actor, userID int, req *models.AdjustBalanceRequest) (*models.User, error)
	ListTransactions(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error)
	ListAuditLogs(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error)
}

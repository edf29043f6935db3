// internal/interfaces/repository.go
package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/models"
)

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur, email çakışmasında repository.ErrDuplicate
	Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)

	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List isim/email araması ile sayfalı liste: users, total_count, error
	List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error)

	UpdateName(ctx context.Context, id int, name string) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateStatusRole(ctx context.Context, id int, status, role string) error
}

// UserRigReaderInterface dashboard için aktif rig okuma
type UserRigReaderInterface interface {
	ListActiveByUser(ctx context.Context, userID int) ([]*models.UserRig, error)
}

// WithdrawalReaderInterface dashboard için bekleyen çekim toplamı
type WithdrawalReaderInterface interface {
	SumPendingByUser(ctx context.Context, userID int) (decimal.Decimal, error)
}

// TransactionRepositoryInterface ledger okuma. Kayıtlar sadece ledger servislerinde yazılır.
type TransactionRepositoryInterface interface {
	List(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error)
}

// NotificationRepositoryInterface bildirim database işlemleri için interface
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, userID int, notifType, title, message string) error
	ListByUser(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, id, userID int) error
	MarkAllRead(ctx context.Context, userID int) (int64, error)
	CountUnread(ctx context.Context, userID int) (int, error)
}

// TicketRepositoryInterface destek talepleri için interface
type TicketRepositoryInterface interface {
	Create(ctx context.Context, userID int, subject, priority string) (*models.Ticket, error)
	AddMessage(ctx context.Context, ticketID, userID int, isAdmin bool, message string) (*models.TicketMessage, error)
	GetByID(ctx context.Context, id int) (*models.Ticket, error)
	ListMessages(ctx context.Context, ticketID int) ([]*models.TicketMessage, error)

	// List userID 0 ise tüm kullanıcılar
	List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// PaymentMethodRepositoryInterface ödeme yöntemleri için interface
type PaymentMethodRepositoryInterface interface {
	ListActive(ctx context.Context) ([]*models.PaymentMethod, error)
	ListAll(ctx context.Context) ([]*models.PaymentMethod, error)
	GetByID(ctx context.Context, id int) (*models.PaymentMethod, error)
	Create(ctx context.Context, req *models.PaymentMethodRequest) (*models.PaymentMethod, error)
	Update(ctx context.Context, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error)
	Delete(ctx context.Context, id int) error
}

// SettingRepositoryInterface site ayarları için interface
type SettingRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.Setting, error)
	Get(ctx context.Context, key string) (string, error)
	SeedDefaults(ctx context.Context, defaults map[string]string) error
}

// AuditRepositoryInterface audit log database işlemleri için interface
type AuditRepositoryInterface interface {
	// Create yeni audit log oluşturur
	Create(ctx context.Context, entry *models.AuditLog) error

	// List entity tipine göre filtreli sayfalı liste
	List(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error)
}

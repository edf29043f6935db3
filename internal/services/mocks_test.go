package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// MockUserRepository - test için mock repository
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id int, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateStatusRole(ctx context.Context, id int, status, role string) error {
	return m.Called(ctx, id, status, role).Error(0)
}

// MockAuditRepository audit mock
type MockAuditRepository struct {
	mock.Mock
}

var _ interfaces.AuditRepositoryInterface = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, entityType, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

// MockNotificationRepository bildirim mock
type MockNotificationRepository struct {
	mock.Mock
}

var _ interfaces.NotificationRepositoryInterface = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) Create(ctx context.Context, userID int, notifType, title, message string) error {
	return m.Called(ctx, userID, notifType, title, message).Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	return args.Get(0).([]*models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockTicketRepository ticket mock
type MockTicketRepository struct {
	mock.Mock
}

var _ interfaces.TicketRepositoryInterface = (*MockTicketRepository)(nil)

func (m *MockTicketRepository) Create(ctx context.Context, userID int, subject, priority string) (*models.Ticket, error) {
	args := m.Called(ctx, userID, subject, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) AddMessage(ctx context.Context, ticketID, userID int, isAdmin bool, message string) (*models.TicketMessage, error) {
	args := m.Called(ctx, ticketID, userID, isAdmin, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketMessage), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListMessages(ctx context.Context, ticketID int) ([]*models.TicketMessage, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).([]*models.TicketMessage), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	return args.Get(0).([]*models.Ticket), args.Int(1), args.Error(2)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockSettingRepository ayar mock
type MockSettingRepository struct {
	mock.Mock
}

var _ interfaces.SettingRepositoryInterface = (*MockSettingRepository)(nil)

func (m *MockSettingRepository) GetAll(ctx context.Context) ([]*models.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Setting), args.Error(1)
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	return m.Called(ctx, defaults).Error(0)
}

// MockPaymentMethodRepository ödeme yöntemi mock
type MockPaymentMethodRepository struct {
	mock.Mock
}

var _ interfaces.PaymentMethodRepositoryInterface = (*MockPaymentMethodRepository)(nil)

func (m *MockPaymentMethodRepository) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListAll(ctx context.Context) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) GetByID(ctx context.Context, id int) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Create(ctx context.Context, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Update(ctx context.Context, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// MockEarningsService settlement queue testleri için
type MockEarningsService struct {
	mock.Mock
}

var _ interfaces.EarningsServiceInterface = (*MockEarningsService)(nil)

func (m *MockEarningsService) Collect(ctx context.Context, userID int) (*models.CollectResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectResult), args.Error(1)
}

// stubSettings sabit ayar değerleri
type stubSettings map[string]string

var _ interfaces.SettingReaderInterface = stubSettings(nil)

func (s stubSettings) Decimal(_ context.Context, key string) (decimal.Decimal, error) {
	return decimal.NewFromString(s[key])
}

// memCache test için bellek içi önbellek
type memCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// MockUserRigReader dashboard rig okuması
type MockUserRigReader struct {
	mock.Mock
}

var _ interfaces.UserRigReaderInterface = (*MockUserRigReader)(nil)

func (m *MockUserRigReader) ListActiveByUser(ctx context.Context, userID int) ([]*models.UserRig, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.UserRig), args.Error(1)
}

// MockWithdrawalReader bekleyen çekim toplamı
type MockWithdrawalReader struct {
	mock.Mock
}

var _ interfaces.WithdrawalReaderInterface = (*MockWithdrawalReader)(nil)

func (m *MockWithdrawalReader) SumPendingByUser(ctx context.Context, userID int) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTransactionRepository ledger okuma mock
type MockTransactionRepository struct {
	mock.Mock
}

var _ interfaces.TransactionRepositoryInterface = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) List(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error) {
	args := m.Called(ctx, userID, txType, limit, offset)
	return args.Get(0).([]*models.Transaction), args.Int(1), args.Error(2)
}

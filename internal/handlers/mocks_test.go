package handlers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/middleware"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// orNil mock dönüşündeki nil pointer'ı tipli nil'e çevirir
func orNil[T any](v interface{}) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

// MockUserService kullanıcı servisi mock
type MockUserService struct {
	mock.Mock
}

var _ interfaces.UserServiceInterface = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	return orNil[models.AuthResponse](args.Get(0)), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	return orNil[models.AuthResponse](args.Get(0)), args.Error(1)
}

func (m *MockUserService) Refresh(ctx context.Context, token string) (*models.AuthResponse, error) {
	args := m.Called(ctx, token)
	return orNil[models.AuthResponse](args.Get(0)), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	return orNil[models.User](args.Get(0)), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	return orNil[models.User](args.Get(0)), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockUserService) List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockUserService) AdminUpdate(ctx context.Context, actor models.Actor, userID int, req *models.AdminUpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actor, userID, req)
	return orNil[models.User](args.Get(0)), args.Error(1)
}

// MockDashboardService panel mock
type MockDashboardService struct {
	mock.Mock
}

var _ interfaces.DashboardServiceInterface = (*MockDashboardService)(nil)

func (m *MockDashboardService) Dashboard(ctx context.Context, userID int) (*models.DashboardStats, error) {
	args := m.Called(ctx, userID)
	return orNil[models.DashboardStats](args.Get(0)), args.Error(1)
}

func (m *MockDashboardService) Transactions(ctx context.Context, userID int, limit, offset int) ([]*models.Transaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Transaction), args.Int(1), args.Error(2)
}

// MockDepositService yatırım mock
type MockDepositService struct {
	mock.Mock
}

var _ interfaces.DepositServiceInterface = (*MockDepositService)(nil)

func (m *MockDepositService) Create(ctx context.Context, userID int, req *models.CreateDepositRequest) (*models.Deposit, error) {
	args := m.Called(ctx, userID, req)
	return orNil[models.Deposit](args.Get(0)), args.Error(1)
}

func (m *MockDepositService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Deposit, int, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	return args.Get(0).([]*models.Deposit), args.Int(1), args.Error(2)
}

func (m *MockDepositService) Approve(ctx context.Context, actor models.Actor, id int) (*models.Deposit, error) {
	args := m.Called(ctx, actor, id)
	return orNil[models.Deposit](args.Get(0)), args.Error(1)
}

func (m *MockDepositService) Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Deposit, error) {
	args := m.Called(ctx, actor, id, note)
	return orNil[models.Deposit](args.Get(0)), args.Error(1)
}

// MockWithdrawalService çekim mock
type MockWithdrawalService struct {
	mock.Mock
}

var _ interfaces.WithdrawalServiceInterface = (*MockWithdrawalService)(nil)

func (m *MockWithdrawalService) Create(ctx context.Context, userID int, req *models.CreateWithdrawalRequest) (*models.Withdrawal, error) {
	args := m.Called(ctx, userID, req)
	return orNil[models.Withdrawal](args.Get(0)), args.Error(1)
}

func (m *MockWithdrawalService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Withdrawal, int, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	return args.Get(0).([]*models.Withdrawal), args.Int(1), args.Error(2)
}

func (m *MockWithdrawalService) Approve(ctx context.Context, actor models.Actor, id int, txHash string) (*models.Withdrawal, error) {
	args := m.Called(ctx, actor, id, txHash)
	return orNil[models.Withdrawal](args.Get(0)), args.Error(1)
}

func (m *MockWithdrawalService) Reject(ctx context.Context, actor models.Actor, id int, note string) (*models.Withdrawal, error) {
	args := m.Called(ctx, actor, id, note)
	return orNil[models.Withdrawal](args.Get(0)), args.Error(1)
}

// MockRigService rig mock
type MockRigService struct {
	mock.Mock
}

var _ interfaces.RigServiceInterface = (*MockRigService)(nil)

func (m *MockRigService) ListPlans(ctx context.Context) ([]*models.Rig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Rig), args.Error(1)
}

func (m *MockRigService) GetPlan(ctx context.Context, id int) (*models.Rig, error) {
	args := m.Called(ctx, id)
	return orNil[models.Rig](args.Get(0)), args.Error(1)
}

func (m *MockRigService) Purchase(ctx context.Context, userID, rigID int) (*models.PurchaseResult, error) {
	args := m.Called(ctx, userID, rigID)
	return orNil[models.PurchaseResult](args.Get(0)), args.Error(1)
}

func (m *MockRigService) ListUserRigs(ctx context.Context, userID int) ([]*models.UserRig, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.UserRig), args.Error(1)
}

func (m *MockRigService) ListAll(ctx context.Context) ([]*models.Rig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Rig), args.Error(1)
}

func (m *MockRigService) Create(ctx context.Context, actor models.Actor, req *models.RigRequest) (*models.Rig, error) {
	args := m.Called(ctx, actor, req)
	return orNil[models.Rig](args.Get(0)), args.Error(1)
}

func (m *MockRigService) Update(ctx context.Context, actor models.Actor, id int, req *models.RigRequest) (*models.Rig, error) {
	args := m.Called(ctx, actor, id, req)
	return orNil[models.Rig](args.Get(0)), args.Error(1)
}

func (m *MockRigService) Deactivate(ctx context.Context, actor models.Actor, id int) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockEarningsService kazanç mock
type MockEarningsService struct {
	mock.Mock
}

var _ interfaces.EarningsServiceInterface = (*MockEarningsService)(nil)

func (m *MockEarningsService) Collect(ctx context.Context, userID int) (*models.CollectResult, error) {
	args := m.Called(ctx, userID)
	return orNil[models.CollectResult](args.Get(0)), args.Error(1)
}

// MockTicketService ticket mock
type MockTicketService struct {
	mock.Mock
}

var _ interfaces.TicketServiceInterface = (*MockTicketService)(nil)

func (m *MockTicketService) Create(ctx context.Context, userID int, req *models.CreateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, userID, req)
	return orNil[models.Ticket](args.Get(0)), args.Error(1)
}

func (m *MockTicketService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	return args.Get(0).([]*models.Ticket), args.Int(1), args.Error(2)
}

func (m *MockTicketService) Get(ctx context.Context, requester *models.User, id int) (*models.Ticket, error) {
	args := m.Called(ctx, requester, id)
	return orNil[models.Ticket](args.Get(0)), args.Error(1)
}

func (m *MockTicketService) Reply(ctx context.Context, requester *models.User, id int, req *models.TicketReplyRequest) (*models.TicketMessage, error) {
	args := m.Called(ctx, requester, id, req)
	return orNil[models.TicketMessage](args.Get(0)), args.Error(1)
}

func (m *MockTicketService) Close(ctx context.Context, requester *models.User, id int) error {
	return m.Called(ctx, requester, id).Error(0)
}

func (m *MockTicketService) SetStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockNotificationService bildirim mock
type MockNotificationService struct {
	mock.Mock
}

var _ interfaces.NotificationServiceInterface = (*MockNotificationService)(nil)

func (m *MockNotificationService) List(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	return args.Get(0).([]*models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id int) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentMethodService ödeme yöntemi mock
type MockPaymentMethodService struct {
	mock.Mock
}

var _ interfaces.PaymentMethodServiceInterface = (*MockPaymentMethodService)(nil)

func (m *MockPaymentMethodService) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodService) ListAll(ctx context.Context) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodService) Create(ctx context.Context, actor models.Actor, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	args := m.Called(ctx, actor, req)
	return orNil[models.PaymentMethod](args.Get(0)), args.Error(1)
}

func (m *MockPaymentMethodService) Update(ctx context.Context, actor models.Actor, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	args := m.Called(ctx, actor, id, req)
	return orNil[models.PaymentMethod](args.Get(0)), args.Error(1)
}

func (m *MockPaymentMethodService) Delete(ctx context.Context, actor models.Actor, id int) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockSettingService ayar mock
type MockSettingService struct {
	mock.Mock
}

var _ interfaces.SettingServiceInterface = (*MockSettingService)(nil)

func (m *MockSettingService) Decimal(ctx context.Context, key string) (decimal.Decimal, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSettingService) All(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingService) Public(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingService) Update(ctx context.Context, actor models.Actor, values map[string]string) (map[string]string, error) {
	args := m.Called(ctx, actor, values)
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockAdminService admin mock
type MockAdminService struct {
	mock.Mock
}

var _ interfaces.AdminServiceInterface = (*MockAdminService)(nil)

func (m *MockAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	return orNil[models.AdminStats](args.Get(0)), args.Error(1)
}

func (m *MockAdminService) AdjustBalance(ctx context.Context, actor models.Actor, userID int, req *models.AdjustBalanceRequest) (*models.User, error) {
	args := m.Called(ctx, actor, userID, req)
	return orNil[models.User](args.Get(0)), args.Error(1)
}

func (m *MockAdminService) ListTransactions(ctx context.Context, userID int, txType string, limit, offset int) ([]*models.Transaction, int, error) {
	args := m.Called(ctx, userID, txType, limit, offset)
	return args.Get(0).([]*models.Transaction), args.Int(1), args.Error(2)
}

func (m *MockAdminService) ListAuditLogs(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, entityType, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

// stubMetrics sabit snapshot döner
type stubMetrics struct{}

func (stubMetrics) Snapshot() *middleware.MetricsSnapshot {
	return &middleware.MetricsSnapshot{TotalRequests: 7}
}

// stubPinger health check için
type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

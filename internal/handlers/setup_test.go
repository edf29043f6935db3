package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/middleware"
	mwerrors "github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/models"
)

type testEnv struct {
	users         *MockUserService
	dashboard     *MockDashboardService
	deposits      *MockDepositService
	withdrawals   *MockWithdrawalService
	rigs          *MockRigService
	earnings      *MockEarningsService
	tickets       *MockTicketService
	notifications *MockNotificationService
	methods       *MockPaymentMethodService
	settings      *MockSettingService
	admin         *MockAdminService

	maintenance *stubSettingsSource
	tokens      *auth.Manager
	handler     http.Handler
}

// stubSettingsSource bakım modu middleware'i için
type stubSettingsSource struct {
	values map[string]string
}

func (s *stubSettingsSource) All(context.Context) (map[string]string, error) {
	return s.values, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:         new(MockUserService),
		dashboard:     new(MockDashboardService),
		deposits:      new(MockDepositService),
		withdrawals:   new(MockWithdrawalService),
		rigs:          new(MockRigService),
		earnings:      new(MockEarningsService),
		tickets:       new(MockTicketService),
		notifications: new(MockNotificationService),
		methods:       new(MockPaymentMethodService),
		settings:      new(MockSettingService),
		admin:         new(MockAdminService),
		maintenance:   &stubSettingsSource{values: map[string]string{models.SettingMaintenanceMode: "false"}},
		tokens:        auth.NewManager("handler-test-secret-0123456789", time.Hour),
	}

	router := NewRouter(RouterDeps{
		Auth:   NewAuthHandler(env.users),
		Public: NewPublicHandler(stubPinger{}, env.rigs, env.methods, env.settings),
		User: NewUserHandler(UserHandlerDeps{
			Users:         env.users,
			Dashboard:     env.dashboard,
			Rigs:          env.rigs,
			Earnings:      env.earnings,
			Deposits:      env.deposits,
			Withdrawals:   env.withdrawals,
			Notifications: env.notifications,
		}),
		Ticket: NewTicketHandler(env.tickets),
		Admin: NewAdminHandler(AdminHandlerDeps{
			Users:          env.users,
			Admin:          env.admin,
			Deposits:       env.deposits,
			Withdrawals:    env.withdrawals,
			Rigs:           env.rigs,
			PaymentMethods: env.methods,
			Settings:       env.settings,
			Metrics:        stubMetrics{},
		}),
		Authenticate: middleware.AuthMiddleware(env.tokens, env.users),
		Maintenance:  middleware.MaintenanceMiddleware(env.maintenance),
	})

	env.handler = middleware.ErrorHandlingMiddleware(mwerrors.DevelopmentErrorConfig())(
		middleware.StripPrefix("/api")(router),
	)

	t.Cleanup(func() {
		env.dashboard.AssertExpectations(t)
		env.deposits.AssertExpectations(t)
		env.withdrawals.AssertExpectations(t)
		env.rigs.AssertExpectations(t)
		env.earnings.AssertExpectations(t)
		env.tickets.AssertExpectations(t)
		env.notifications.AssertExpectations(t)
		env.methods.AssertExpectations(t)
		env.settings.AssertExpectations(t)
		env.admin.AssertExpectations(t)
	})
	return env
}

// login kullanıcı için token üretir ve AuthMiddleware'in yüklemesini ayarlar
func (e *testEnv) login(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	e.users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Maybe()
	return token
}

func (e *testEnv) do(method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// envelope test tarafında data'yı ham tutar
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func testUser() *models.User {
	return &models.User{
		ID:      7,
		Name:    "Deniz Madenci",
		Email:   "deniz@example.com",
		Role:    models.RoleUser,
		Status:  models.UserStatusActive,
		Balance: decimal.NewFromInt(100),
	}
}

func testAdmin() *models.User {
	return &models.User{
		ID:     1,
		Name:   "Admin",
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
		Status: models.UserStatusActive,
	}
}

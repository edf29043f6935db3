package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/services"
)

func TestUserHandler_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()
	token := env.login(t, user)

	env.dashboard.On("Dashboard", mock.Anything, user.ID).Return(&models.DashboardStats{
		User:         user,
		ActiveRigs:   2,
		DailyEarning: decimal.RequireFromString("3.5"),
	}, nil).Once()

	rec := env.do(http.MethodGet, "/api/user/dashboard", token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &stats))
	assert.Equal(t, 2, stats.ActiveRigs)
	assert.True(t, decimal.RequireFromString("3.5").Equal(stats.DailyEarning))
}

func TestUserHandler_PurchaseRig(t *testing.T) {
	user := testUser()

	t.Run("geçersiz rig_id servise gitmez", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodPost, "/user/rigs", env.login(t, user), `{"rig_id":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("başarılı", func(t *testing.T) {
		env := newTestEnv(t)
		env.rigs.On("Purchase", mock.Anything, user.ID, 3).Return(&models.PurchaseResult{
			UserRig: &models.UserRig{ID: 11, RigID: 3, UserID: user.ID},
			Balance: decimal.NewFromInt(40),
		}, nil).Once()

		rec := env.do(http.MethodPost, "/user/rigs", env.login(t, user), `{"rig_id":3}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var result models.PurchaseResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		assert.Equal(t, 11, result.UserRig.ID)
		assert.True(t, decimal.NewFromInt(40).Equal(result.Balance))
	})

	domainErrors := []error{
		services.ErrPurchaseLimit,
		services.ErrInsufficientBalance,
		services.ErrRigUnavailable,
	}
	for _, domainErr := range domainErrors {
		t.Run(domainErr.Error(), func(t *testing.T) {
			env := newTestEnv(t)
			env.rigs.On("Purchase", mock.Anything, user.ID, 3).Return(nil, domainErr).Once()

			rec := env.do(http.MethodPost, "/user/rigs", env.login(t, user), `{"rig_id":3}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, domainErr.Error(), decodeEnvelope(t, rec).Error)
		})
	}

	t.Run("olmayan rig", func(t *testing.T) {
		env := newTestEnv(t)
		env.rigs.On("Purchase", mock.Anything, user.ID, 999).Return(nil, services.ErrNotFound).Once()

		rec := env.do(http.MethodPost, "/user/rigs", env.login(t, user), `{"rig_id":999}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserHandler_CollectEarnings(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()

	env.earnings.On("Collect", mock.Anything, user.ID).Return(&models.CollectResult{
		Amount:   decimal.RequireFromString("1.25"),
		RigCount: 2,
		Balance:  decimal.RequireFromString("101.25"),
	}, nil).Once()

	rec := env.do(http.MethodPost, "/user/earnings/collect", env.login(t, user), "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Kazanç bakiyeye eklendi", body.Message)
}

func TestUserHandler_CreateWithdrawal_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()

	env.withdrawals.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(req *models.CreateWithdrawalRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(500)) && req.WalletAddress == "TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE"
	})).Return(nil, services.ErrInsufficientBalance).Once()

	rec := env.do(http.MethodPost, "/user/withdrawals", env.login(t, user),
		`{"amount":"500","wallet_address":"TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_CreateDeposit(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()

	env.deposits.On("Create", mock.Anything, user.ID, mock.AnythingOfType("*models.CreateDepositRequest")).
		Return(&models.Deposit{ID: 5, UserID: user.ID, Status: models.StatusPending, Amount: decimal.NewFromInt(500)}, nil).Once()

	rec := env.do(http.MethodPost, "/user/deposits", env.login(t, user),
		`{"payment_method_id":1,"amount":500,"tx_hash":"0xabc123def456"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUserHandler_ListPagination(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()
	token := env.login(t, user)

	// Varsayılan sayfa
	env.deposits.On("List", mock.Anything, user.ID, "", 20, 0).Return([]*models.Deposit{}, 0, nil).Once()
	rec := env.do(http.MethodGet, "/user/deposits", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Limit 100 ile sınırlanır, durum filtresi geçer
	env.deposits.On("List", mock.Anything, user.ID, "pending", 100, 40).
		Return([]*models.Deposit{{ID: 1}}, 41, nil).Once()
	rec = env.do(http.MethodGet, "/user/deposits?status=pending&limit=500&offset=40", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &page))
	assert.EqualValues(t, 41, page["total_count"])
	assert.EqualValues(t, 1, page["count"])
	assert.EqualValues(t, 100, page["limit"])
}

func TestUserHandler_Notifications(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()
	token := env.login(t, user)

	env.notifications.On("List", mock.Anything, user.ID, true, 20, 0).
		Return([]*models.Notification{{ID: 1, Title: "Yatırım onaylandı"}}, 1, nil).Once()
	env.notifications.On("MarkRead", mock.Anything, user.ID, 42).Return(services.ErrNotFound).Once()
	env.notifications.On("MarkAllRead", mock.Anything, user.ID).Return(int64(3), nil).Once()

	rec := env.do(http.MethodGet, "/user/notifications?unread=true", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPut, "/user/notifications/42/read", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, "/user/notifications/read-all", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":3}`, string(decodeEnvelope(t, rec).Data))
}

func TestUserHandler_ChangePassword_WrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()

	env.users.On("ChangePassword", mock.Anything, user.ID, mock.Anything).Return(services.ErrInvalidCredentials).Once()

	rec := env.do(http.MethodPut, "/user/password", env.login(t, user),
		`{"current_password":"eski12345","new_password":"yeni12345"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMaintenanceMode(t *testing.T) {
	env := newTestEnv(t)
	env.maintenance.values[models.SettingMaintenanceMode] = "true"

	user := testUser()
	rec := env.do(http.MethodGet, "/user/profile", env.login(t, user), "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)

	// Admin bakımda da çalışabilir
	admin := testAdmin()
	rec = env.do(http.MethodGet, "/user/profile", env.login(t, admin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnhandledServiceError_HidesDetails(t *testing.T) {
	env := newTestEnv(t)
	user := testUser()

	env.dashboard.On("Dashboard", mock.Anything, user.ID).
		Return(nil, assert.AnError).Once()

	rec := env.do(http.MethodGet, "/user/dashboard", env.login(t, user), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.NotContains(t, body.Error, assert.AnError.Error())
}

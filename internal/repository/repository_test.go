package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-mining-api/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		database.Close()
	})
	return database, mock
}

var (
	testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	userCols = []string{"id", "name", "email", "password", "role", "status", "balance",
		"total_deposits", "total_withdrawals", "total_earnings", "created_at", "updated_at"}
	depositCols = []string{"id", "user_id", "email", "payment_method_id", "amount", "tx_hash",
		"status", "admin_note", "created_at", "processed_at"}
)

func userRow(id int, email, balance string) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(id, "Ayşe", email, "hash", models.RoleUser,
		models.UserStatusActive, balance, "0", "0", "0", testNow, testNow)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset     int
		wantLim, wantOffs int
	}{
		{0, 0, 20, 0},
		{-5, -1, 20, 0},
		{50, 10, 50, 10},
		{500, 40, 100, 40},
	}
	for _, tt := range tests {
		l, o := NormalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLim, l)
		assert.Equal(t, tt.wantOffs, o)
	}
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ayşe", "ayse@example.com", "hash", models.RoleUser).
			WillReturnRows(userRow(3, "ayse@example.com", "0"))

		user, err := NewUserRepository(database).Create(context.Background(), "Ayşe", "ayse@example.com", "hash", models.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, 3, user.ID)
		assert.True(t, user.Balance.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		database, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		_, err := NewUserRepository(database).Create(context.Background(), "Ayşe", "ayse@example.com", "hash", models.RoleUser)
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs(99).WillReturnRows(sqlmock.NewRows(userCols))

	_, err := NewUserRepository(database).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Debit(t *testing.T) {
	amount := decimal.RequireFromString("25.5")

	t.Run("enough balance", func(t *testing.T) {
		database, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance - $1")).
			WithArgs(amount, 7).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewUserRepository(database).Debit(context.Background(), 7, amount))
	})

	t.Run("guard rejects", func(t *testing.T) {
		database, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance - $1")).
			WithArgs(amount, 7).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewUserRepository(database).Debit(context.Background(), 7, amount)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestUserRepository_List_NormalizesPage(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WithArgs("ayse").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("ORDER BY id DESC").WithArgs("ayse", 100, 0).
		WillReturnRows(userRow(3, "ayse@example.com", "12.5"))

	users, total, err := NewUserRepository(database).List(context.Background(), "ayse", 1000, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(users[0].Balance))
}

func TestDepositRepository_Create_DuplicateTxHash(t *testing.T) {
	database, mock := newMock(t)
	req := &models.CreateDepositRequest{PaymentMethodID: 1, Amount: decimal.NewFromInt(50), TxHash: "0xabc"}
	mock.ExpectQuery("INSERT INTO deposits").
		WithArgs(7, 1, req.Amount, "0xabc").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := NewDepositRepository(database).Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDepositRepository_MarkProcessed(t *testing.T) {
	t.Run("pending row", func(t *testing.T) {
		database, mock := newMock(t)
		processed := testNow.Add(time.Hour)
		mock.ExpectQuery("UPDATE deposits SET status = \\$2").
			WithArgs(4, models.StatusApproved, "ok").
			WillReturnRows(sqlmock.NewRows(depositCols).AddRow(
				4, 7, "ayse@example.com", 1, "50", "0xabc", models.StatusApproved, "ok", testNow, processed))

		d, err := NewDepositRepository(database).MarkProcessed(context.Background(), 4, models.StatusApproved, "ok")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, d.Status)
		require.NotNil(t, d.ProcessedAt)
		assert.True(t, processed.Equal(*d.ProcessedAt))
	})

	t.Run("already processed", func(t *testing.T) {
		database, mock := newMock(t)
		mock.ExpectQuery("UPDATE deposits SET status = \\$2").WillReturnRows(sqlmock.NewRows(depositCols))

		_, err := NewDepositRepository(database).MarkProcessed(context.Background(), 4, models.StatusRejected, "")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestUserRigRepository_Create(t *testing.T) {
	database, mock := newMock(t)
	ur := &models.UserRig{
		UserID:       7,
		RigID:        2,
		PricePaid:    decimal.NewFromInt(100),
		DailyEarning: decimal.RequireFromString("3.5"),
		PurchasedAt:  testNow,
		ExpiresAt:    testNow.AddDate(0, 0, 30),
	}
	mock.ExpectQuery("INSERT INTO user_rigs").
		WithArgs(7, 2, ur.PricePaid, ur.DailyEarning, testNow, ur.ExpiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, NewUserRigRepository(database).Create(context.Background(), ur))
	assert.Equal(t, 11, ur.ID)
	assert.Equal(t, testNow, ur.LastMinedAt)
	assert.Equal(t, models.UserRigStatusActive, ur.Status)
	assert.True(t, ur.TotalEarned.IsZero())
}

func TestUserRigRepository_UsersWithExpiredRigs(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery("SELECT DISTINCT user_id FROM user_rigs").
		WithArgs(testNow, 50).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3).AddRow(9))

	ids, err := NewUserRigRepository(database).UsersWithExpiredRigs(context.Background(), testNow, 50)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 9}, ids)
}

func TestSettingRepository_Get_Missing(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery("SELECT value FROM settings").WithArgs(models.SettingSiteName).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := NewSettingRepository(database).Get(context.Background(), models.SettingSiteName)
	assert.ErrorIs(t, err, ErrNotFound)
}

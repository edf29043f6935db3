package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-mining-api/internal/models"
)

func TestAdminService_AdjustBalance_Credit(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewAdminService(database)
	admin := models.Actor{UserID: 1, IPAddress: "10.0.0.1", UserAgent: "curl"}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET balance = balance \+ \$1, updated_at`).
		WithArgs("25", 7).
		WillReturnResult(okResult())
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(7, models.TxTypeAdjustment, "25", "bonus", nil).
		WillReturnRows(txRow(7, models.TxTypeAdjustment, "25"))
	mock.ExpectExec(`INSERT INTO notifications`).WillReturnResult(okResult())
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs("user", 7, "adjust_balance", 1, sqlmock.AnyArg(), "10.0.0.1", "curl").
		WillReturnResult(okResult())
	mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(7).
		WillReturnRows(userRow(7, "125"))
	mock.ExpectCommit()

	user, err := service.AdjustBalance(context.Background(), admin, 7, &models.AdjustBalanceRequest{
		Amount: decimal.NewFromInt(25), Reason: "bonus",
	})

	require.NoError(t, err)
	assert.Equal(t, "125", user.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_AdjustBalance_CannotGoNegative(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewAdminService(database)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET balance = balance - \$1`).
		WithArgs("30", 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := service.AdjustBalance(context.Background(), models.Actor{UserID: 1}, 7, &models.AdjustBalanceRequest{
		Amount: decimal.NewFromInt(-30), Reason: "iade düzeltmesi",
	})

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_AdjustBalance_Invalid(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewAdminService(database)

	_, err := service.AdjustBalance(context.Background(), models.Actor{UserID: 1}, 7, &models.AdjustBalanceRequest{Amount: decimal.Zero})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

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

var testSettings = stubSettings{
	models.SettingMinDeposit:           "10",
	models.SettingMinWithdrawal:        "10",
	models.SettingWithdrawalFeePercent: "5",
}

func depositRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(depositCols).AddRow(
		1, 7, "miner@example.com", 2, "500", "0xdeadbeef00", status, "", testNow, testNow,
	)
}

func TestDepositService_Approve_CreditsBalance(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewDepositService(database, new(MockPaymentMethodRepository), testSettings)
	admin := models.Actor{UserID: 99}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(1, models.StatusApproved, "").
		WillReturnRows(depositRow(models.StatusApproved))
	// Bakiye tam olarak yatırım tutarı kadar artar (1000 -> 1500)
	mock.ExpectExec(`UPDATE users SET balance = balance \+ \$1, total_deposits = total_deposits \+ \$1`).
		WithArgs("500", 7).
		WillReturnResult(okResult())
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(7, models.TxTypeDeposit, "500", sqlmock.AnyArg(), 1).
		WillReturnRows(txRow(7, models.TxTypeDeposit, "500"))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(7, models.NotifyDepositApproved, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(okResult())
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs("deposit", 1, "approve", 99, sqlmock.AnyArg(), "", "").
		WillReturnResult(okResult())
	mock.ExpectCommit()

	deposit, err := service.Approve(context.Background(), admin, 1)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, deposit.Status)
	assert.True(t, decimal.NewFromInt(500).Equal(deposit.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Approve_AlreadyProcessed(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewDepositService(database, new(MockPaymentMethodRepository), testSettings)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(1, models.StatusApproved, "").
		WillReturnRows(sqlmock.NewRows(depositCols))
	mock.ExpectQuery(`FROM deposits d JOIN users u`).
		WithArgs(1).
		WillReturnRows(depositRow(models.StatusApproved))
	mock.ExpectRollback()

	_, err := service.Approve(context.Background(), models.Actor{UserID: 99}, 1)

	// İkinci onay hiçbir şey yazmaz
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Reject_NotFound(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewDepositService(database, new(MockPaymentMethodRepository), testSettings)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(42, models.StatusRejected, "sahte hash").
		WillReturnRows(sqlmock.NewRows(depositCols))
	mock.ExpectQuery(`FROM deposits d JOIN users u`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(depositCols))
	mock.ExpectRollback()

	_, err := service.Reject(context.Background(), models.Actor{UserID: 99}, 42, "sahte hash")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Reject_NoBalanceEffect(t *testing.T) {
	database, mock := newMockDB(t)
	service := NewDepositService(database, new(MockPaymentMethodRepository), testSettings)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(1, models.StatusRejected, "hash bulunamadı").
		WillReturnRows(depositRow(models.StatusRejected))
	mock.ExpectExec(`INSERT INTO notifications`).WillReturnResult(okResult())
	mock.ExpectExec(`INSERT INTO audit_logs`).WillReturnResult(okResult())
	mock.ExpectCommit()

	deposit, err := service.Reject(context.Background(), models.Actor{UserID: 99}, 1, "hash bulunamadı")

	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, deposit.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Create_BelowMethodMinimum(t *testing.T) {
	database, mock := newMockDB(t)
	methods := new(MockPaymentMethodRepository)
	service := NewDepositService(database, methods, testSettings)
	ctx := context.Background()

	methods.On("GetByID", ctx, 2).Return(&models.PaymentMethod{
		ID: 2, Status: models.RigStatusActive, MinDeposit: decimal.NewFromInt(50),
	}, nil)

	_, err := service.Create(ctx, 7, &models.CreateDepositRequest{
		PaymentMethodID: 2, Amount: decimal.NewFromInt(20), TxHash: "0xfeedface01",
	})

	assert.ErrorIs(t, err, ErrBelowMinimum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Create_InactiveMethod(t *testing.T) {
	database, _ := newMockDB(t)
	methods := new(MockPaymentMethodRepository)
	service := NewDepositService(database, methods, testSettings)
	ctx := context.Background()

	methods.On("GetByID", ctx, 3).Return(&models.PaymentMethod{ID: 3, Status: models.RigStatusInactive}, nil)

	_, err := service.Create(ctx, 7, &models.CreateDepositRequest{
		PaymentMethodID: 3, Amount: decimal.NewFromInt(100), TxHash: "0xfeedface01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDepositService_Create_Pending(t *testing.T) {
	database, mock := newMockDB(t)
	methods := new(MockPaymentMethodRepository)
	service := NewDepositService(database, methods, testSettings)
	ctx := context.Background()

	methods.On("GetByID", ctx, 2).Return(&models.PaymentMethod{ID: 2, Status: models.RigStatusActive}, nil)
	mock.ExpectQuery(`INSERT INTO deposits`).
		WithArgs(7, 2, "500", "0xdeadbeef00").
		WillReturnRows(depositRow(models.StatusPending))

	deposit, err := service.Create(ctx, 7, &models.CreateDepositRequest{
		PaymentMethodID: 2, Amount: decimal.NewFromInt(500), TxHash: "0xdeadbeef00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, deposit.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

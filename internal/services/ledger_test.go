package services

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	depositCols    = []string{"id", "user_id", "email", "payment_method_id", "amount", "tx_hash", "status", "admin_note", "created_at", "processed_at"}
	withdrawalCols = []string{"id", "user_id", "email", "payment_method_id", "amount", "fee", "wallet_address", "status", "tx_hash", "admin_note", "created_at", "processed_at"}
	rigCols        = []string{"id", "name", "description", "price", "daily_earning", "duration", "duration_unit", "hash_rate", "max_purchase", "is_free", "status", "created_at", "updated_at"}
	userCols       = []string{"id", "name", "email", "password", "role", "status", "balance", "total_deposits", "total_withdrawals", "total_earnings", "created_at", "updated_at"}
	userRigCols    = []string{"id", "user_id", "rig_id", "name", "price_paid", "daily_earning", "purchased_at", "expires_at", "last_mined_at", "total_earned", "status"}
	txCols         = []string{"id", "user_id", "type", "amount", "description", "reference_id", "created_at"}
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, mock
}

func userRow(id int, balance string) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		id, "Madenci", "miner@example.com", "hash", "user", "active",
		balance, "0", "0", "0", testNow, testNow,
	)
}

func txRow(userID int, txType, amount string) *sqlmock.Rows {
	return sqlmock.NewRows(txCols).AddRow(1, userID, txType, amount, "", nil, testNow)
}

func okResult() driver.Result {
	return sqlmock.NewResult(0, 1)
}

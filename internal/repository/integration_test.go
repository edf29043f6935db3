//go:build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/onerilhan/go-mining-api/internal/migration"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/migrations"
)

// setupDatabase postgres container açar ve gömülü migration'ları uygular
func setupDatabase(t *testing.T) (*sql.DB, *migration.Runner) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mining_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"test": "mining-repository", "test-name": t.Name()}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("Warning: container kapatılamadı: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	runner := migration.NewRunner(database, migrations.FS, migration.DefaultConfig(""))
	results, err := runner.Up(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	return database, runner
}

func TestIntegration_Repositories(t *testing.T) {
	database, runner := setupDatabase(t)
	ctx := context.Background()

	users := NewUserRepository(database)
	methods := NewPaymentMethodRepository(database)
	deposits := NewDepositRepository(database)

	t.Run("seed data", func(t *testing.T) {
		value, err := NewSettingRepository(database).Get(ctx, models.SettingMinWithdrawal)
		require.NoError(t, err)
		assert.Equal(t, "10", value)

		rigs, err := NewRigRepository(database).ListActive(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, rigs)

		var free *models.Rig
		for _, r := range rigs {
			if r.IsFree {
				free = r
			}
		}
		require.NotNil(t, free)
		assert.Equal(t, 1, free.MaxPurchase)
	})

	user, err := users.Create(ctx, "Ayşe", "ayse@example.com", "hash", models.RoleUser)
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.Create(ctx, "Ayşe 2", "ayse@example.com", "hash", models.RoleUser)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	method, err := methods.Create(ctx, &models.PaymentMethodRequest{
		Name: "USDT", Currency: "USDT", Network: "TRC20", WalletAddress: "TXyz", MinDeposit: decimal.NewFromInt(10), Status: models.RigStatusActive,
	})
	require.NoError(t, err)

	t.Run("deposit approve once", func(t *testing.T) {
		d, err := deposits.Create(ctx, user.ID, &models.CreateDepositRequest{
			PaymentMethodID: method.ID, Amount: decimal.RequireFromString("150.25"), TxHash: "0xintegration",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, d.Status)
		assert.Equal(t, "ayse@example.com", d.UserEmail)

		_, err = deposits.Create(ctx, user.ID, &models.CreateDepositRequest{
			PaymentMethodID: method.ID, Amount: decimal.NewFromInt(20), TxHash: "0xintegration",
		})
		assert.ErrorIs(t, err, ErrDuplicate)

		approved, err := deposits.MarkProcessed(ctx, d.ID, models.StatusApproved, "")
		require.NoError(t, err)
		require.NotNil(t, approved.ProcessedAt)
		require.NoError(t, users.CreditDeposit(ctx, user.ID, approved.Amount))

		_, err = deposits.MarkProcessed(ctx, d.ID, models.StatusRejected, "")
		assert.ErrorIs(t, err, ErrNotPending)

		balance, err := users.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.25").Equal(balance), balance.String())
	})

	t.Run("debit guard", func(t *testing.T) {
		assert.ErrorIs(t, users.Debit(ctx, user.ID, decimal.NewFromInt(1000)), ErrInsufficientFunds)
		require.NoError(t, users.Debit(ctx, user.ID, decimal.RequireFromString("0.25")))

		balance, err := users.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(150).Equal(balance), balance.String())
	})

	t.Run("payment method in use is deactivated", func(t *testing.T) {
		require.NoError(t, methods.Delete(ctx, method.ID))
		got, err := methods.GetByID(ctx, method.ID)
		require.NoError(t, err)
		assert.Equal(t, "inactive", got.Status)
	})

	t.Run("status and rollback", func(t *testing.T) {
		status, err := runner.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, migration.HealthOK, status.Health)
		assert.Zero(t, status.PendingCount)

		_, err = runner.Rollback(ctx)
		require.NoError(t, err)

		_, err = users.GetByID(ctx, user.ID)
		assert.Error(t, err)

		_, err = runner.Up(ctx, 0)
		require.NoError(t, err)
		_, err = users.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// ledgerBase bakiyeye dokunan servislerin ortak repository'leri.
// Bakiye değişiklikleri her zaman tek bir database transaction'ı içinde yapılır.
type ledgerBase struct {
	db            *sql.DB
	users         *repository.UserRepository
	transactions  *repository.TransactionRepository
	notifications *repository.NotificationRepository
	audits        *repository.AuditRepository
}

func newLedgerBase(database *sql.DB) ledgerBase {
	return ledgerBase{
		db:            database,
		users:         repository.NewUserRepository(database),
		transactions:  repository.NewTransactionRepository(database),
		notifications: repository.NewNotificationRepository(database),
		audits:        repository.NewAuditRepository(database),
	}
}

// ledgerTx transaction'a bağlı repository seti
type ledgerTx struct {
	users         *repository.UserRepository
	transactions  *repository.TransactionRepository
	notifications *repository.NotificationRepository
	audits        *repository.AuditRepository
}

func (b ledgerBase) bind(tx *sql.Tx) *ledgerTx {
	return &ledgerTx{
		users:         b.users.WithTx(tx),
		transactions:  b.transactions.WithTx(tx),
		notifications: b.notifications.WithTx(tx),
		audits:        b.audits.WithTx(tx),
	}
}

// record ledger'a işaretli tutarla hareket ekler
func (l *ledgerTx) record(ctx context.Context, userID int, txType string, amount decimal.Decimal, description string, referenceID int) error {
	var ref *int
	if referenceID > 0 {
		ref = &referenceID
	}
	_, err := l.transactions.Create(ctx, userID, txType, amount, description, ref)
	return err
}

// debit yetersiz bakiyeyi domain hatasına çevirir
func (l *ledgerTx) debit(ctx context.Context, userID int, amount decimal.Decimal) error {
	err := l.users.Debit(ctx, userID, amount)
	if errors.Is(err, repository.ErrInsufficientFunds) {
		return ErrInsufficientBalance
	}
	return err
}

func (l *ledgerTx) notify(ctx context.Context, userID int, notifType, title, message string) error {
	return l.notifications.Create(ctx, userID, notifType, title, message)
}

func (l *ledgerTx) audit(ctx context.Context, actor models.Actor, entityType string, entityID int, action, details string) error {
	return l.audits.Create(ctx, auditEntry(actor, entityType, entityID, action, details))
}

// pendingError koşullu güncelleme satır döndürmediğinde nedenini ayırt eder
func pendingError(err error, exists func() error) error {
	if !errors.Is(err, repository.ErrNotPending) {
		return err
	}
	if lookupErr := exists(); lookupErr != nil {
		return lookupErr
	}
	return ErrAlreadyProcessed
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger kayıt tipleri
const (
	TxTypeDeposit     = "deposit"
	TxTypeWithdrawal  = "withdrawal"
	TxTypeRigPurchase = "rig_purchase"
	TxTypeEarning     = "earning"
	TxTypeAdjustment  = "adjustment"
)

// Transaction bakiye hareketinin değiştirilemez kaydı. Amount işaretlidir.
type Transaction struct {
	ID          int             `json:"id" db:"id"`
	UserID      int             `json:"user_id" db:"user_id"`
	Type        string          `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	ReferenceID *int            `json:"reference_id,omitempty" db:"reference_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

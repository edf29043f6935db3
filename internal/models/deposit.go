package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Talep durumları (deposit ve withdrawal ortak)
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidRequestStatus filtre olarak kabul edilen durumlar (boş: hepsi)
func ValidRequestStatus(status string) bool {
	switch status {
	case "", StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Deposit kullanıcının yatırım talebi
type Deposit struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	UserEmail       string          `json:"user_email,omitempty" db:"user_email"`
	PaymentMethodID int             `json:"payment_method_id" db:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	TxHash          string          `json:"tx_hash" db:"tx_hash"`
	Status          string          `json:"status" db:"status"`
	AdminNote       string          `json:"admin_note,omitempty" db:"admin_note"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}

// CreateDepositRequest yatırım talebi isteği
type CreateDepositRequest struct {
	PaymentMethodID int             `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	TxHash          string          `json:"tx_hash"`
}

// Validate yatırım isteğini doğrular
func (r *CreateDepositRequest) Validate() error {
	if r.PaymentMethodID <= 0 {
		return fmt.Errorf("ödeme yöntemi gerekli")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("tutar sıfırdan büyük olmalı")
	}
	if !r.Amount.Equal(r.Amount.Truncate(8)) {
		return fmt.Errorf("tutar en fazla 8 ondalık basamak içerebilir")
	}
	r.TxHash = strings.TrimSpace(r.TxHash)
	if len(r.TxHash) < 8 || len(r.TxHash) > 128 {
		return fmt.Errorf("geçerli bir işlem hash'i gerekli")
	}
	return nil
}

// ReviewRequest admin onay/red isteği
type ReviewRequest struct {
	TxHash string `json:"tx_hash,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Normalize boşlukları temizler
func (r *ReviewRequest) Normalize() {
	r.TxHash = strings.TrimSpace(r.TxHash)
	r.Note = strings.TrimSpace(r.Note)
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal kullanıcının çekim talebi. Amount+Fee talep anında bakiyeden düşülür.
type Withdrawal struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	UserEmail       string          `json:"user_email,omitempty" db:"user_email"`
	PaymentMethodID *int            `json:"payment_method_id,omitempty" db:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Fee             decimal.Decimal `json:"fee" db:"fee"`
	WalletAddress   string          `json:"wallet_address" db:"wallet_address"`
	Status          string          `json:"status" db:"status"`
	TxHash          string          `json:"tx_hash,omitempty" db:"tx_hash"`
	AdminNote       string          `json:"admin_note,omitempty" db:"admin_note"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}

// Hold talep anında bakiyeden düşülen toplam
func (w *Withdrawal) Hold() decimal.Decimal {
	return w.Amount.Add(w.Fee)
}

// CreateWithdrawalRequest çekim talebi isteği
type CreateWithdrawalRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	WalletAddress   string          `json:"wallet_address"`
	PaymentMethodID *int            `json:"payment_method_id,omitempty"`
}

// Validate çekim isteğini doğrular
func (r *CreateWithdrawalRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return fmt.Errorf("tutar sıfırdan büyük olmalı")
	}
	if !r.Amount.Equal(r.Amount.Truncate(8)) {
		return fmt.Errorf("tutar en fazla 8 ondalık basamak içerebilir")
	}
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	if len(r.WalletAddress) < 20 || len(r.WalletAddress) > 128 {
		return fmt.Errorf("geçerli bir cüzdan adresi gerekli")
	}
	if r.PaymentMethodID != nil && *r.PaymentMethodID <= 0 {
		return fmt.Errorf("geçersiz ödeme yöntemi")
	}
	return nil
}

// WithdrawalFee yüzde oranından ücret hesaplar (8 basamağa yuvarlanır)
func WithdrawalFee(amount, feePercent decimal.Decimal) decimal.Decimal {
	if !feePercent.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(feePercent).Div(decimal.NewFromInt(100)).Round(8)
}

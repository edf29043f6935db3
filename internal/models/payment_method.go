package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod yatırım için kullanılan kripto cüzdanı
type PaymentMethod struct {
	ID            int             `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Currency      string          `json:"currency" db:"currency"`
	Network       string          `json:"network" db:"network"`
	WalletAddress string          `json:"wallet_address" db:"wallet_address"`
	MinDeposit    decimal.Decimal `json:"min_deposit" db:"min_deposit"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// IsActive yöntem kullanılabilir mi
func (p *PaymentMethod) IsActive() bool {
	return p.Status == RigStatusActive
}

// PaymentMethodRequest admin oluşturma/güncelleme isteği
type PaymentMethodRequest struct {
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Network       string          `json:"network"`
	WalletAddress string          `json:"wallet_address"`
	MinDeposit    decimal.Decimal `json:"min_deposit"`
	Status        string          `json:"status"`
}

// Validate ödeme yöntemi isteğini doğrular
func (r *PaymentMethodRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.Network = strings.TrimSpace(r.Network)
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	if r.Name == "" || r.Currency == "" {
		return fmt.Errorf("isim ve para birimi gerekli")
	}
	if len(r.WalletAddress) < 20 {
		return fmt.Errorf("geçerli bir cüzdan adresi gerekli")
	}
	if r.MinDeposit.IsNegative() {
		return fmt.Errorf("minimum yatırım negatif olamaz")
	}
	if r.Status == "" {
		r.Status = RigStatusActive
	}
	if r.Status != RigStatusActive && r.Status != RigStatusInactive {
		return fmt.Errorf("geçersiz durum: %s", r.Status)
	}
	return nil
}

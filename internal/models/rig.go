package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rig durumları ve süre birimleri
const (
	RigStatusActive   = "active"
	RigStatusInactive = "inactive"

	UserRigStatusActive  = "active"
	UserRigStatusExpired = "expired"

	DurationHours  = "hours"
	DurationDays   = "days"
	DurationWeeks  = "weeks"
	DurationMonths = "months"
	DurationYears  = "years"
)

// Rig satın alınabilir madencilik planı
type Rig struct {
	ID           int             `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	DailyEarning decimal.Decimal `json:"daily_earning" db:"daily_earning"`
	Duration     int             `json:"duration" db:"duration"`
	DurationUnit string          `json:"duration_unit" db:"duration_unit"`
	HashRate     string          `json:"hash_rate" db:"hash_rate"`
	MaxPurchase  int             `json:"max_purchase" db:"max_purchase"`
	IsFree       bool            `json:"is_free" db:"is_free"`
	Status       string          `json:"status" db:"status"`
	TotalReturn  decimal.Decimal `json:"total_return" db:"-"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// ExpiresAt satın alma anından itibaren bitiş zamanını hesaplar
func (r *Rig) ExpiresAt(from time.Time) time.Time {
	return AddDuration(from, r.Duration, r.DurationUnit)
}

// ExpectedReturn from anından başlayan süre boyunca beklenen toplam kazanç.
// Ay ve yıl birimlerinde sonuç başlangıç tarihine bağlıdır.
func (r *Rig) ExpectedReturn(from time.Time) decimal.Decimal {
	span := decimal.NewFromInt(int64(r.ExpiresAt(from).Sub(from)))
	return r.DailyEarning.Mul(span).Div(decimal.NewFromInt(int64(24 * time.Hour))).Truncate(8)
}

// PurchaseLimitReached kullanıcının sahip olduğu adet limite ulaştı mı (<=0 limitsiz)
func (r *Rig) PurchaseLimitReached(owned int) bool {
	return r.MaxPurchase > 0 && owned >= r.MaxPurchase
}

// AddDuration süre birimine göre zaman ekler. Ay ve yıl takvime göre eklenir.
func AddDuration(from time.Time, amount int, unit string) time.Time {
	switch unit {
	case DurationHours:
		return from.Add(time.Duration(amount) * time.Hour)
	case DurationWeeks:
		return from.AddDate(0, 0, 7*amount)
	case DurationMonths:
		return from.AddDate(0, amount, 0)
	case DurationYears:
		return from.AddDate(amount, 0, 0)
	default:
		return from.AddDate(0, 0, amount)
	}
}

func validDurationUnit(unit string) bool {
	switch unit {
	case DurationHours, DurationDays, DurationWeeks, DurationMonths, DurationYears:
		return true
	}
	return false
}

// UserRig kullanıcının satın aldığı rig
type UserRig struct {
	ID           int             `json:"id" db:"id"`
	UserID       int             `json:"user_id" db:"user_id"`
	RigID        int             `json:"rig_id" db:"rig_id"`
	RigName      string          `json:"rig_name,omitempty" db:"rig_name"`
	PricePaid    decimal.Decimal `json:"price_paid" db:"price_paid"`
	DailyEarning decimal.Decimal `json:"daily_earning" db:"daily_earning"`
	PurchasedAt  time.Time       `json:"purchased_at" db:"purchased_at"`
	ExpiresAt    time.Time       `json:"expires_at" db:"expires_at"`
	LastMinedAt  time.Time       `json:"last_mined_at" db:"last_mined_at"`
	TotalEarned  decimal.Decimal `json:"total_earned" db:"total_earned"`
	Status       string          `json:"status" db:"status"`
}

// Accrue son toplamadan until'e kadar biriken kazancı döner.
// Kazanç hiçbir zaman ExpiresAt sonrasına taşmaz.
func (ur *UserRig) Accrue(until time.Time) (earned decimal.Decimal, minedUntil time.Time) {
	end := until
	if end.After(ur.ExpiresAt) {
		end = ur.ExpiresAt
	}
	if !end.After(ur.LastMinedAt) {
		return decimal.Zero, ur.LastMinedAt
	}

	// Saniye altı kesir de hesaba girer
	elapsed := decimal.NewFromInt(int64(end.Sub(ur.LastMinedAt)))
	return ur.DailyEarning.Mul(elapsed).Div(decimal.NewFromInt(int64(24 * time.Hour))).Truncate(8), end
}

// PurchaseRigRequest rig satın alma isteği
type PurchaseRigRequest struct {
	RigID int `json:"rig_id"`
}

// Validate satın alma isteğini doğrular
func (r *PurchaseRigRequest) Validate() error {
	if r.RigID <= 0 {
		return fmt.Errorf("geçerli bir rig_id gerekli")
	}
	return nil
}

// RigRequest admin rig oluşturma/güncelleme isteği
type RigRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DailyEarning decimal.Decimal `json:"daily_earning"`
	Duration     int             `json:"duration"`
	DurationUnit string          `json:"duration_unit"`
	HashRate     string          `json:"hash_rate"`
	MaxPurchase  int             `json:"max_purchase"`
	IsFree       bool            `json:"is_free"`
	Status       string          `json:"status"`
}

// Validate rig isteğini doğrular, eksik alanlara varsayılan atar
func (r *RigRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("rig adı gerekli")
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("fiyat negatif olamaz")
	}
	if !r.IsFree && r.Price.IsZero() {
		return fmt.Errorf("ücretli rig için fiyat gerekli")
	}
	if r.IsFree {
		r.Price = decimal.Zero
		// Ücretsiz rig kullanıcı başına bir kez alınabilir
		r.MaxPurchase = 1
	}
	if !r.DailyEarning.IsPositive() {
		return fmt.Errorf("günlük kazanç pozitif olmalı")
	}
	if r.Duration <= 0 {
		return fmt.Errorf("süre pozitif olmalı")
	}
	if r.DurationUnit == "" {
		r.DurationUnit = DurationDays
	}
	if !validDurationUnit(r.DurationUnit) {
		return fmt.Errorf("geçersiz süre birimi: %s", r.DurationUnit)
	}
	if r.MaxPurchase < 0 {
		return fmt.Errorf("max_purchase negatif olamaz")
	}
	if r.Status == "" {
		r.Status = RigStatusActive
	}
	if r.Status != RigStatusActive && r.Status != RigStatusInactive {
		return fmt.Errorf("geçersiz durum: %s", r.Status)
	}
	return nil
}

// PurchaseResult satın alma sonucu
type PurchaseResult struct {
	UserRig *UserRig        `json:"user_rig"`
	Balance decimal.Decimal `json:"balance"`
}

// CollectResult kazanç toplama sonucu
type CollectResult struct {
	Amount      decimal.Decimal `json:"amount"`
	RigCount    int             `json:"rig_count"`
	ExpiredRigs int             `json:"expired_rigs"`
	Balance     decimal.Decimal `json:"balance"`
}

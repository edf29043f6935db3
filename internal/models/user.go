package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Roller ve durumlar
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User kullanıcı modelini temsil eder
type User struct {
	ID               int             `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Email            string          `json:"email" db:"email"`
	Password         string          `json:"-" db:"password"` // JSON'da gösterilmez
	Role             string          `json:"role" db:"role"`
	Status           string          `json:"status" db:"status"`
	Balance          decimal.Decimal `json:"balance" db:"balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits" db:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals" db:"total_withdrawals"`
	TotalEarnings    decimal.Decimal `json:"total_earnings" db:"total_earnings"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// IsAdmin admin rolü kontrolü
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive hesap aktif mi
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CreateUserRequest kullanıcı kayıt isteği
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize boşlukları temizler, email'i küçük harfe çevirir
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate kayıt isteğini doğrular
func (r *CreateUserRequest) Validate() error {
	r.Normalize()
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return fmt.Errorf("isim 2-100 karakter arasında olmalı")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// LoginRequest giriş isteği
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate giriş isteğini doğrular
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email ve şifre gerekli")
	}
	return nil
}

// AuthResponse giriş/kayıt yanıtı
type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// UpdateProfileRequest profil güncelleme isteği
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// Validate profil isteğini doğrular
func (r *UpdateProfileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return fmt.Errorf("isim 2-100 karakter arasında olmalı")
	}
	return nil
}

// ChangePasswordRequest şifre değiştirme isteği
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate şifre değiştirme isteğini doğrular
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return fmt.Errorf("mevcut şifre gerekli")
	}
	if r.CurrentPassword == r.NewPassword {
		return fmt.Errorf("yeni şifre mevcut şifreden farklı olmalı")
	}
	return validatePassword(r.NewPassword)
}

// AdminUpdateUserRequest admin'in kullanıcı durumu/rolü güncellemesi
type AdminUpdateUserRequest struct {
	Status *string `json:"status,omitempty"`
	Role   *string `json:"role,omitempty"`
}

// Validate admin güncelleme isteğini doğrular
func (r *AdminUpdateUserRequest) Validate() error {
	if r.Status == nil && r.Role == nil {
		return fmt.Errorf("güncellenecek alan yok")
	}
	if r.Status != nil && *r.Status != UserStatusActive && *r.Status != UserStatusSuspended {
		return fmt.Errorf("geçersiz durum: %s", *r.Status)
	}
	if r.Role != nil && *r.Role != RoleUser && *r.Role != RoleAdmin {
		return fmt.Errorf("geçersiz rol: %s", *r.Role)
	}
	return nil
}

// AdjustBalanceRequest manuel bakiye düzeltmesi (pozitif: ekle, negatif: düş)
type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// Validate bakiye düzeltme isteğini doğrular
func (r *AdjustBalanceRequest) Validate() error {
	if r.Amount.IsZero() {
		return fmt.Errorf("tutar sıfır olamaz")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return fmt.Errorf("açıklama gerekli")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email gerekli")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("geçersiz email formatı")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("şifre en az 8 karakter olmalı")
	}
	if len(password) > 72 {
		return fmt.Errorf("şifre en fazla 72 karakter olabilir")
	}

	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("şifre en az bir harf ve bir rakam içermeli")
	}
	return nil
}

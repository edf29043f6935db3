package models

import "time"

// Ayar anahtarları
const (
	SettingSiteName             = "site_name"
	SettingMinWithdrawal        = "min_withdrawal"
	SettingWithdrawalFeePercent = "withdrawal_fee_percent"
	SettingMinDeposit           = "min_deposit"
	SettingMaintenanceMode      = "maintenance_mode"
)

// DefaultSettings ayar tablosu boşsa kullanılan değerler
var DefaultSettings = map[string]string{
	SettingSiteName:             "HashPool",
	SettingMinWithdrawal:        "10",
	SettingWithdrawalFeePercent: "5",
	SettingMinDeposit:           "10",
	SettingMaintenanceMode:      "false",
}

// PublicSettingKeys giriş yapmadan okunabilen ayarlar
var PublicSettingKeys = []string{
	SettingSiteName,
	SettingMinWithdrawal,
	SettingWithdrawalFeePercent,
	SettingMinDeposit,
}

// Setting key/value site ayarı
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

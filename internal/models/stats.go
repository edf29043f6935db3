package models

import "github.com/shopspring/decimal"

// DashboardStats kullanıcı paneli özeti
type DashboardStats struct {
	User                *User           `json:"user"`
	ActiveRigs          int             `json:"active_rigs"`
	DailyEarning        decimal.Decimal `json:"daily_earning"`
	PendingEarnings     decimal.Decimal `json:"pending_earnings"`
	PendingWithdrawals  decimal.Decimal `json:"pending_withdrawals"`
	RecentTransactions  []*Transaction  `json:"recent_transactions"`
	UnreadNotifications int             `json:"unread_notifications"`
}

// AdminStats admin paneli özeti
type AdminStats struct {
	TotalUsers         int             `json:"total_users"`
	ActiveUsers        int             `json:"active_users"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals   decimal.Decimal `json:"total_withdrawals"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	PendingDeposits    int             `json:"pending_deposits"`
	PendingWithdrawals int             `json:"pending_withdrawals"`
	ActiveRigs         int             `json:"active_rigs"`
	OpenTickets        int             `json:"open_tickets"`
}

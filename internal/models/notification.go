package models

import "time"

// Bildirim tipleri
const (
	NotifyDepositApproved    = "deposit_approved"
	NotifyDepositRejected    = "deposit_rejected"
	NotifyWithdrawalApproved = "withdrawal_approved"
	NotifyWithdrawalRejected = "withdrawal_rejected"
	NotifyRigPurchased       = "rig_purchased"
	NotifyEarnings           = "earnings_collected"
	NotifyTicketReply        = "ticket_reply"
	NotifyBalanceAdjusted    = "balance_adjusted"
)

// Notification kullanıcı bildirimi
type Notification struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

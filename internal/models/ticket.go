package models

import (
	"fmt"
	"strings"
	"time"
)

// Ticket durumları ve öncelikleri
const (
	TicketOpen     = "open"
	TicketAnswered = "answered"
	TicketClosed   = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Ticket destek talebi
type Ticket struct {
	ID        int              `json:"id" db:"id"`
	UserID    int              `json:"user_id" db:"user_id"`
	UserEmail string           `json:"user_email,omitempty" db:"user_email"`
	Subject   string           `json:"subject" db:"subject"`
	Priority  string           `json:"priority" db:"priority"`
	Status    string           `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
	Messages  []*TicketMessage `json:"messages,omitempty"`
}

// TicketMessage ticket'a yazılan mesaj
type TicketMessage struct {
	ID        int       `json:"id" db:"id"`
	TicketID  int       `json:"ticket_id" db:"ticket_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateTicketRequest yeni ticket isteği
type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Validate ticket isteğini doğrular
func (r *CreateTicketRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	if len(r.Subject) < 3 || len(r.Subject) > 200 {
		return fmt.Errorf("konu 3-200 karakter arasında olmalı")
	}
	if r.Message == "" || len(r.Message) > 5000 {
		return fmt.Errorf("mesaj 1-5000 karakter arasında olmalı")
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	switch r.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return fmt.Errorf("geçersiz öncelik: %s", r.Priority)
	}
	return nil
}

// TicketReplyRequest ticket yanıtı
type TicketReplyRequest struct {
	Message string `json:"message"`
}

// Validate yanıtı doğrular
func (r *TicketReplyRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" || len(r.Message) > 5000 {
		return fmt.Errorf("mesaj 1-5000 karakter arasında olmalı")
	}
	return nil
}

// TicketStatusRequest admin durum güncellemesi
type TicketStatusRequest struct {
	Status string `json:"status"`
}

// Validate durumu doğrular
func (r *TicketStatusRequest) Validate() error {
	if !ValidTicketStatus(r.Status) || r.Status == "" {
		return fmt.Errorf("geçersiz ticket durumu: %s", r.Status)
	}
	return nil
}

// ValidTicketStatus filtre olarak kabul edilen durumlar (boş: hepsi)
func ValidTicketStatus(status string) bool {
	switch status {
	case "", TicketOpen, TicketAnswered, TicketClosed:
		return true
	}
	return false
}

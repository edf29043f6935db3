package services

import (
	"errors"

	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// Domain hataları. Handler katmanı errors.Is ile HTTP koduna çevirir.
var (
	ErrNotFound            = repository.ErrNotFound
	ErrAlreadyProcessed    = errors.New("talep zaten işlenmiş")
	ErrInsufficientBalance = errors.New("yetersiz bakiye")
	ErrPurchaseLimit       = errors.New("bu rig için satın alma limitine ulaşıldı")
	ErrRigUnavailable      = errors.New("rig satışta değil")
	ErrEmailTaken          = errors.New("bu email zaten kullanılıyor")
	ErrInvalidCredentials  = errors.New("email veya şifre hatalı")
	ErrAccountSuspended    = errors.New("hesap askıya alınmış")
	ErrForbidden           = errors.New("bu işlem için yetkiniz yok")
	ErrBelowMinimum        = errors.New("tutar minimum limitin altında")
	ErrTicketClosed        = errors.New("ticket kapalı")
	ErrInvalidInput        = errors.New("geçersiz istek")
)

// auditEntry admin işlemi için audit kaydı hazırlar
func auditEntry(actor models.Actor, entityType string, entityID int, action, details string) *models.AuditLog {
	var userID *int
	if actor.UserID > 0 {
		id := actor.UserID
		userID = &id
	}
	return &models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
		Details:    details,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// TicketService destek talepleri
type TicketService struct {
	tickets       interfaces.TicketRepositoryInterface
	notifications interfaces.NotificationRepositoryInterface
}

// NewTicketService yeni service oluşturur
func NewTicketService(tickets interfaces.TicketRepositoryInterface, notifications interfaces.NotificationRepositoryInterface) *TicketService {
	return &TicketService{tickets: tickets, notifications: notifications}
}

var _ interfaces.TicketServiceInterface = (*TicketService)(nil)

// Create ticket açar ve ilk mesajı ekler
func (s *TicketService) Create(ctx context.Context, userID int, req *models.CreateTicketRequest) (*models.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ticket, err := s.tickets.Create(ctx, userID, req.Subject, req.Priority)
	if err != nil {
		return nil, err
	}

	msg, err := s.tickets.AddMessage(ctx, ticket.ID, userID, false, req.Message)
	if err != nil {
		return nil, err
	}
	ticket.Messages = []*models.TicketMessage{msg}

	log.Info().Int("ticket_id", ticket.ID).Int("user_id", userID).Msg("Ticket açıldı")
	return ticket, nil
}

// List ticket listesi. userID 0 ise tüm kullanıcılar (admin).
func (s *TicketService) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error) {
	if !models.ValidTicketStatus(status) {
		return nil, 0, fmt.Errorf("%w: geçersiz durum filtresi", ErrInvalidInput)
	}
	return s.tickets.List(ctx, userID, status, limit, offset)
}

// load sahiplik kontrolü ile ticket getirir
func (s *TicketService) load(ctx context.Context, requester *models.User, id int) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != requester.ID && !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	return ticket, nil
}

// Get ticket'ı mesajlarıyla döner
func (s *TicketService) Get(ctx context.Context, requester *models.User, id int) (*models.Ticket, error) {
	ticket, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	messages, err := s.tickets.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Messages = messages
	return ticket, nil
}

// Reply ticket'a mesaj ekler. Admin yanıtı durumu answered yapar ve sahibine
// bildirim gönderir, kullanıcı yanıtı ticket'ı tekrar open yapar.
func (s *TicketService) Reply(ctx context.Context, requester *models.User, id int, req *models.TicketReplyRequest) (*models.TicketMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ticket, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketClosed {
		return nil, ErrTicketClosed
	}

	asAdmin := requester.IsAdmin() && ticket.UserID != requester.ID
	msg, err := s.tickets.AddMessage(ctx, id, requester.ID, asAdmin, req.Message)
	if err != nil {
		return nil, err
	}

	status := models.TicketOpen
	if asAdmin {
		status = models.TicketAnswered
	}
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if asAdmin {
		if err := s.notifications.Create(ctx, ticket.UserID, models.NotifyTicketReply, "Ticket yanıtlandı",
			fmt.Sprintf("\"%s\" konulu talebiniz yanıtlandı.", ticket.Subject)); err != nil {
			log.Error().Err(err).Int("ticket_id", id).Msg("Ticket bildirimi gönderilemedi")
		}
	}
	return msg, nil
}

// Close ticket'ı kapatır
func (s *TicketService) Close(ctx context.Context, requester *models.User, id int) error {
	if _, err := s.load(ctx, requester, id); err != nil {
		return err
	}
	return s.tickets.UpdateStatus(ctx, id, models.TicketClosed)
}

// SetStatus admin durum güncellemesi
func (s *TicketService) SetStatus(ctx context.Context, id int, status string) error {
	req := models.TicketStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.tickets.UpdateStatus(ctx, id, status)
}

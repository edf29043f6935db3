package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const ticketColumns = `t.id, t.user_id, u.email, t.subject, t.priority, t.status, t.created_at, t.updated_at`

// TicketRepository destek talepleri database işlemleri
type TicketRepository struct {
	db db.DBTX
}

// NewTicketRepository yeni repository oluşturur
func NewTicketRepository(database db.DBTX) *TicketRepository {
	return &TicketRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *TicketRepository) WithTx(tx *sql.Tx) *TicketRepository {
	return &TicketRepository{db: tx}
}

func scanTicket(row scanner) (*models.Ticket, error) {
	t := &models.Ticket{}
	err := row.Scan(&t.ID, &t.UserID, &t.UserEmail, &t.Subject, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// Create yeni ticket açar (open)
func (r *TicketRepository) Create(ctx context.Context, userID int, subject, priority string) (*models.Ticket, error) {
	query := `
		WITH t AS (
			INSERT INTO tickets (user_id, subject, priority, status)
			VALUES ($1, $2, $3, 'open')
			RETURNING *
		)
		SELECT ` + ticketColumns + ` FROM t JOIN users u ON u.id = t.user_id`

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, userID, subject, priority))
	if err != nil {
		return nil, fmt.Errorf("ticket oluşturulamadı: %w", err)
	}
	return t, nil
}

// AddMessage ticket'a mesaj ekler
func (r *TicketRepository) AddMessage(ctx context.Context, ticketID, userID int, isAdmin bool, message string) (*models.TicketMessage, error) {
	m := &models.TicketMessage{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ticket_messages (ticket_id, user_id, is_admin, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ticket_id, user_id, is_admin, message, created_at`,
		ticketID, userID, isAdmin, message,
	).Scan(&m.ID, &m.TicketID, &m.UserID, &m.IsAdmin, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ticket mesajı eklenemedi: %w", err)
	}
	return m, nil
}

// GetByID ID ile ticket getirir (mesajlar hariç)
func (r *TicketRepository) GetByID(ctx context.Context, id int) (*models.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets t JOIN users u ON u.id = t.user_id WHERE t.id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("ticket sorgusu hatası: %w", err)
	}
	return t, err
}

// ListMessages ticket mesajları, eskiden yeniye
func (r *TicketRepository) ListMessages(ctx context.Context, ticketID int) ([]*models.TicketMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticket_id, user_id, is_admin, message, created_at
		FROM ticket_messages WHERE ticket_id = $1
		ORDER BY created_at ASC, id ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("ticket mesajları alınamadı: %w", err)
	}
	defer rows.Close()

	messages := []*models.TicketMessage{}
	for rows.Next() {
		m := &models.TicketMessage{}
		if err := rows.Scan(&m.ID, &m.TicketID, &m.UserID, &m.IsAdmin, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("ticket mesajı scan hatası: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// List ticket'ları listeler. userID 0 ise tüm kullanıcılar, status boşsa tüm durumlar.
func (r *TicketRepository) List(ctx context.Context, userID int, status string, limit, offset int) ([]*models.Ticket, int, error) {
	limit, offset = NormalizePage(limit, offset)
	where := `($1 = 0 OR t.user_id = $1) AND ($2 = '' OR t.status = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets t WHERE `+where, userID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ticket sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets t JOIN users u ON u.id = t.user_id
		WHERE `+where+`
		ORDER BY t.updated_at DESC, t.id DESC
		LIMIT $3 OFFSET $4`, userID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ticket'lar listelenemedi: %w", err)
	}
	defer rows.Close()

	tickets := []*models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ticket scan hatası: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, total, rows.Err()
}

// UpdateStatus durumu günceller ve updated_at'i yeniler
func (r *TicketRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("ticket durumu güncellenemedi: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

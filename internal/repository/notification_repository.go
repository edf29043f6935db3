package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// NotificationRepository bildirim database işlemleri
type NotificationRepository struct {
	db db.DBTX
}

// NewNotificationRepository yeni repository oluşturur
func NewNotificationRepository(database db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *NotificationRepository) WithTx(tx *sql.Tx) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// Create kullanıcıya bildirim ekler
func (r *NotificationRepository) Create(ctx context.Context, userID int, notifType, title, message string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, title, message) VALUES ($1, $2, $3, $4)`,
		userID, notifType, title, message)
	if err != nil {
		return fmt.Errorf("bildirim oluşturulamadı: %w", err)
	}
	return nil
}

// ListByUser kullanıcının bildirimleri, en yeni önce
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	limit, offset = NormalizePage(limit, offset)
	where := `user_id = $1 AND (NOT $2 OR is_read = FALSE)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, userID, unreadOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("bildirim sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("bildirimler listelenemedi: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("bildirim scan hatası: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// MarkRead sadece kullanıcının kendi bildirimini okundu yapar
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("bildirim güncellenemedi: %w", err)
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

// MarkAllRead kullanıcının tüm bildirimlerini okundu yapar, güncellenen sayıyı döner
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("bildirimler güncellenemedi: %w", err)
	}
	return result.RowsAffected()
}

// CountUnread okunmamış bildirim sayısı
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("okunmamış bildirimler sayılamadı: %w", err)
	}
	return count, nil
}

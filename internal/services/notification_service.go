package services

import (
	"context"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// NotificationService kullanıcı bildirimleri
type NotificationService struct {
	repo interfaces.NotificationRepositoryInterface
}

// NewNotificationService yeni service oluşturur
func NewNotificationService(repo interfaces.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

var _ interfaces.NotificationServiceInterface = (*NotificationService)(nil)

func (s *NotificationService) List(ctx context.Context, userID int, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead başka kullanıcının bildirimi bulunamadı sayılır
func (s *NotificationService) MarkRead(ctx context.Context, userID, id int) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

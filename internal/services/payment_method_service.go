package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/cache"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// PaymentMethodService yatırım cüzdanları
type PaymentMethodService struct {
	repo      interfaces.PaymentMethodRepositoryInterface
	auditRepo interfaces.AuditRepositoryInterface
	cache     cache.Cache
	ttl       time.Duration
}

// NewPaymentMethodService yeni service oluşturur
func NewPaymentMethodService(repo interfaces.PaymentMethodRepositoryInterface, auditRepo interfaces.AuditRepositoryInterface, c cache.Cache, ttl time.Duration) *PaymentMethodService {
	return &PaymentMethodService{repo: repo, auditRepo: auditRepo, cache: c, ttl: ttl}
}

var _ interfaces.PaymentMethodServiceInterface = (*PaymentMethodService)(nil)

// ListActive kullanıcıya gösterilen yöntemler, önbellekten
func (s *PaymentMethodService) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	var methods []*models.PaymentMethod
	found, err := cache.GetJSON(ctx, s.cache, cache.KeyPaymentMethods, &methods)
	if err != nil {
		log.Warn().Err(err).Msg("Ödeme yöntemi önbelleği okunamadı")
	}
	if found {
		return methods, nil
	}

	methods, err = s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, cache.KeyPaymentMethods, methods, s.ttl); err != nil {
		log.Warn().Err(err).Msg("Ödeme yöntemleri önbelleğe yazılamadı")
	}
	return methods, nil
}

func (s *PaymentMethodService) ListAll(ctx context.Context) ([]*models.PaymentMethod, error) {
	return s.repo.ListAll(ctx)
}

func (s *PaymentMethodService) changed(ctx context.Context, actor models.Actor, id int, action, details string) {
	if err := s.cache.Delete(ctx, cache.KeyPaymentMethods); err != nil {
		log.Warn().Err(err).Msg("Ödeme yöntemi önbelleği temizlenemedi")
	}
	if err := s.auditRepo.Create(ctx, auditEntry(actor, "payment_method", id, action, details)); err != nil {
		log.Error().Err(err).Int("payment_method_id", id).Msg("Audit kaydı yazılamadı")
	}
}

// Create yeni yöntem ekler
func (s *PaymentMethodService) Create(ctx context.Context, actor models.Actor, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	method, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, actor, method.ID, "create", method.Name)
	return method, nil
}

// Update yöntemi günceller
func (s *PaymentMethodService) Update(ctx context.Context, actor models.Actor, id int, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	method, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, actor, id, "update", method.Name)
	return method, nil
}

// Delete yöntemi siler, geçmişte kullanılmışsa pasife alır
func (s *PaymentMethodService) Delete(ctx context.Context, actor models.Actor, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, actor, id, "delete", "")
	return nil
}

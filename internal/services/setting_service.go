package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/cache"
	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// decimalSettings sayısal olması gereken ayarlar
var decimalSettings = map[string]bool{
	models.SettingMinWithdrawal:        true,
	models.SettingWithdrawalFeePercent: true,
	models.SettingMinDeposit:           true,
}

// SettingService site ayarları. Okumalar önbellekten yapılır, yazmalar önbelleği temizler.
type SettingService struct {
	db    *sql.DB
	repo  interfaces.SettingRepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

// NewSettingService yeni service oluşturur. Güncellemeler database üzerinde
// tek transaction içinde yazılır.
func NewSettingService(database *sql.DB, repo interfaces.SettingRepositoryInterface, c cache.Cache, ttl time.Duration) *SettingService {
	return &SettingService{db: database, repo: repo, cache: c, ttl: ttl}
}

var _ interfaces.SettingServiceInterface = (*SettingService)(nil)

// SeedDefaults eksik varsayılan ayarları veritabanına yazar
func (s *SettingService) SeedDefaults(ctx context.Context) error {
	return s.repo.SeedDefaults(ctx, models.DefaultSettings)
}

// All varsayılanlarla birleştirilmiş tüm ayarlar
func (s *SettingService) All(ctx context.Context) (map[string]string, error) {
	values := map[string]string{}
	found, err := cache.GetJSON(ctx, s.cache, cache.KeySettings, &values)
	if err != nil {
		log.Warn().Err(err).Msg("Ayar önbelleği okunamadı")
	}
	if found {
		return values, nil
	}

	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	values = make(map[string]string, len(models.DefaultSettings)+len(settings))
	for k, v := range models.DefaultSettings {
		values[k] = v
	}
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	if err := cache.SetJSON(ctx, s.cache, cache.KeySettings, values, s.ttl); err != nil {
		log.Warn().Err(err).Msg("Ayarlar önbelleğe yazılamadı")
	}
	return values, nil
}

// Public giriş yapmadan gösterilebilen ayarlar
func (s *SettingService) Public(ctx context.Context) (map[string]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	public := make(map[string]string, len(models.PublicSettingKeys))
	for _, key := range models.PublicSettingKeys {
		public[key] = all[key]
	}
	return public, nil
}

// Decimal sayısal ayarı okur
func (s *SettingService) Decimal(ctx context.Context, key string) (decimal.Decimal, error) {
	all, err := s.All(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(all[key])
	if err != nil {
		return decimal.Zero, fmt.Errorf("ayar sayısal değil (%s=%q): %w", key, all[key], err)
	}
	return value, nil
}

// Update verilen ayarları kaydeder ve audit kaydı yazar
func (s *SettingService) Update(ctx context.Context, actor models.Actor, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: güncellenecek ayar yok", ErrInvalidInput)
	}

	clean := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for key, value := range values {
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || len(key) > 100 {
			return nil, fmt.Errorf("%w: geçersiz ayar anahtarı", ErrInvalidInput)
		}
		if decimalSettings[key] {
			d, err := decimal.NewFromString(value)
			if err != nil || d.IsNegative() {
				return nil, fmt.Errorf("%w: %s sıfır veya pozitif bir sayı olmalı", ErrInvalidInput, key)
			}
		}
		if key == models.SettingMaintenanceMode {
			on, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s true veya false olmalı", ErrInvalidInput, key)
			}
			value = strconv.FormatBool(on)
		}
		clean[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Ayarlar ve audit kaydı birlikte yazılır ya da hiçbiri yazılmaz
	err := db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		settings := repository.NewSettingRepository(tx)
		for _, key := range keys {
			if err := settings.Upsert(ctx, key, clean[key]); err != nil {
				return err
			}
		}
		details := "keys: " + strings.Join(keys, ",")
		return repository.NewAuditRepository(tx).Create(ctx, auditEntry(actor, "setting", 0, "update", details))
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cache.KeySettings); err != nil {
		log.Warn().Err(err).Msg("Ayar önbelleği temizlenemedi")
	}

	return s.All(ctx)
}

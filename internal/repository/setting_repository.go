package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// SettingRepository key/value site ayarları
type SettingRepository struct {
	db db.DBTX
}

// NewSettingRepository yeni repository oluşturur
func NewSettingRepository(database db.DBTX) *SettingRepository {
	return &SettingRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *SettingRepository) WithTx(tx *sql.Tx) *SettingRepository {
	return &SettingRepository{db: tx}
}

// GetAll tüm ayarları key sırasıyla döner
func (r *SettingRepository) GetAll(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("ayarlar alınamadı: %w", err)
	}
	defer rows.Close()

	settings := []*models.Setting{}
	for rows.Next() {
		s := &models.Setting{}
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ayar scan hatası: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Get tek ayar değeri
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("ayar sorgusu hatası (%s): %w", key, err)
	}
	return value, nil
}

// Upsert ayarı ekler veya günceller
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, key, value)
	if err != nil {
		return fmt.Errorf("ayar kaydedilemedi (%s): %w", key, err)
	}
	return nil
}

// SeedDefaults eksik varsayılan ayarları ekler, mevcutlara dokunmaz
func (r *SettingRepository) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`, key, value); err != nil {
			return fmt.Errorf("varsayılan ayar eklenemedi (%s): %w", key, err)
		}
	}
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache okuma ağırlıklı veriler için basit key/value önbellek
type Cache interface {
	// Get anahtar yoksa found=false döner
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Anahtarlar
const (
	KeyActivePlans    = "mining:plans:active"
	KeySettings       = "mining:settings:all"
	KeyPaymentMethods = "mining:payment_methods:active"
)

// NoopCache Redis yapılandırılmadığında kullanılır, hiçbir şey saklamaz
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, ...string) error { return nil }

// GetJSON önbellekteki JSON değerini dest'e çözer
func GetJSON(ctx context.Context, c Cache, key string, dest interface{}) (bool, error) {
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("cache değeri çözülemedi (%s): %w", key, err)
	}
	return true, nil
}

// SetJSON değeri JSON olarak önbelleğe yazar
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache değeri serileştirilemedi (%s): %w", key, err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}

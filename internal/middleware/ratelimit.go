package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/utils"
)

// RateLimitConfig IP başına rate limit ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	WhitelistIPs      []string
	SkipPaths         []string
	IdleTimeout       time.Duration // Bu süre istek gelmeyen IP'nin limiter'ı silinir
}

// NewRateLimitConfig RATE_LIMIT_PER_MINUTE değerinden ayar üretir
func NewRateLimitConfig(perMinute int) *RateLimitConfig {
	burst := perMinute / 6
	if burst < 5 {
		burst = 5
	}
	return &RateLimitConfig{
		RequestsPerMinute: perMinute,
		Burst:             burst,
		SkipPaths:         []string{"/health", "/api/health"},
		IdleTimeout:       30 * time.Minute,
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter IP başına token bucket tutar
type RateLimiter struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
	now      func() time.Time
}

// NewRateLimiter limiter oluşturur; temizlik goroutine'i ctx bitince durur
func NewRateLimiter(ctx context.Context, config *RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*ipLimiter),
		now:      time.Now,
	}
	go rl.cleanupLoop(ctx)
	return rl
}

// Handler rate limiting middleware'i döner
func (rl *RateLimiter) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if containsString(rl.config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := utils.GetClientIP(r)
			if containsString(rl.config.WhitelistIPs, clientIP) {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryAfter := rl.allow(clientIP)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				log.Warn().Str("client_ip", clientIP).Str("path", r.URL.Path).Msg("Request blocked - rate limit exceeded")

				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))

				resp := errors.NewErrorResponse(w, http.StatusTooManyRequests,
					"rate limit aşıldı",
					"Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
				)
				if err := resp.Write(w); err != nil {
					log.Error().Err(err).Msg("Rate limit response yazılamadı")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allow IP için bir token harcar
func (rl *RateLimiter) allow(ip string) (allowed bool, remaining int, retryAfter time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	entry, exists := rl.limiters[ip]
	if !exists {
		every := time.Minute / time.Duration(rl.config.RequestsPerMinute)
		entry = &ipLimiter{limiter: rate.NewLimiter(rate.Every(every), rl.config.Burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, 0, delay
	}

	remaining = int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup uzun süredir görülmeyen IP'leri siler
func (rl *RateLimiter) cleanup() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	removed := 0
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.config.IdleTimeout {
			delete(rl.limiters, ip)
			removed++
		}
	}

	log.Debug().Int("removed", removed).Int("active_limiters", len(rl.limiters)).Msg("Rate limiter cleanup completed")
	return removed
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

package middleware

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// MetricsConfig middleware ayarları
type MetricsConfig struct {
	SlowRequestThreshold time.Duration
	MemoryAlertThreshold uint64 // bytes
	MaxStoredResponse    int    // endpoint başına saklanan süre sayısı
	MemoryCheckInterval  time.Duration
}

// DefaultMetricsConfig varsayılan ayarlar
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		SlowRequestThreshold: 2 * time.Second,
		MemoryAlertThreshold: 256 * 1024 * 1024,
		MaxStoredResponse:    100,
		MemoryCheckInterval:  30 * time.Second,
	}
}

// Metrics bellekte tutulan istek metrikleri. Endpoint anahtarı mux route
// şablonudur ("/admin/users/{id}"), ID'ler ayrı anahtar üretmez.
type Metrics struct {
	config *MetricsConfig

	mutex            sync.RWMutex
	totalRequests    int64
	activeRequests   int64
	slowRequests     int64
	memoryUsage      uint64
	responseTimes    map[string][]time.Duration
	statusCodeCounts map[int]int64
	endpointCounts   map[string]int64
	startedAt        time.Time
}

// MetricsSnapshot /admin/metrics yanıtı
type MetricsSnapshot struct {
	TotalRequests       int64                       `json:"total_requests"`
	ActiveRequests      int64                       `json:"active_requests"`
	SlowRequests        int64                       `json:"slow_requests"`
	MemoryUsage         uint64                      `json:"memory_usage_bytes"`
	Goroutines          int                         `json:"goroutines"`
	UptimeSeconds       int64                       `json:"uptime_seconds"`
	StatusCodeCounts    map[int]int64               `json:"status_code_counts"`
	EndpointCounts      map[string]int64            `json:"endpoint_counts"`
	ResponseTimeSummary map[string]ResponseTimeStat `json:"response_time_summary"`
	LastUpdated         time.Time                   `json:"last_updated"`
}

// ResponseTimeStat endpoint başına süre özeti (milisaniye)
type ResponseTimeStat struct {
	Count     int     `json:"count"`
	AverageMs float64 `json:"average_ms"`
	MaxMs     float64 `json:"max_ms"`
	P95Ms     float64 `json:"p95_ms"`
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (mrw *metricsResponseWriter) WriteHeader(code int) {
	mrw.statusCode = code
	mrw.ResponseWriter.WriteHeader(code)
}

// NewMetrics metrik toplayıcı oluşturur; bellek kontrolü ctx bitince durur
func NewMetrics(ctx context.Context, config *MetricsConfig) *Metrics {
	if config == nil {
		config = DefaultMetricsConfig()
	}
	m := &Metrics{
		config:           config,
		responseTimes:    make(map[string][]time.Duration),
		statusCodeCounts: make(map[int]int64),
		endpointCounts:   make(map[string]int64),
		startedAt:        time.Now(),
	}
	if config.MemoryCheckInterval > 0 {
		go m.memoryMonitor(ctx)
	}
	return m
}

// Middleware router.Use ile eklenir, route eşleştikten sonra çalışır
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := routeTemplate(r)

		m.mutex.Lock()
		m.totalRequests++
		m.activeRequests++
		m.endpointCounts[r.Method+" "+endpoint]++
		m.mutex.Unlock()

		wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			elapsed := time.Since(start)
			m.record(r.Method+" "+endpoint, wrapped.statusCode, elapsed)

			if elapsed > m.config.SlowRequestThreshold {
				log.Warn().
					Str("method", r.Method).
					Str("endpoint", endpoint).
					Dur("response_time", elapsed).
					Msg("Slow request detected")
			}
		}()

		next.ServeHTTP(wrapped, r)
	})
}

func (m *Metrics) record(key string, statusCode int, elapsed time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.activeRequests--
	m.statusCodeCounts[statusCode]++
	if elapsed > m.config.SlowRequestThreshold {
		m.slowRequests++
	}

	times := append(m.responseTimes[key], elapsed)
	if len(times) > m.config.MaxStoredResponse {
		times = times[len(times)-m.config.MaxStoredResponse:]
	}
	m.responseTimes[key] = times
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func (m *Metrics) memoryMonitor(ctx context.Context) {
	ticker := time.NewTicker(m.config.MemoryCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Memory monitor stopped")
			return
		case <-ticker.C:
			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)

			m.mutex.Lock()
			m.memoryUsage = mem.Alloc
			m.mutex.Unlock()

			if mem.Alloc > m.config.MemoryAlertThreshold {
				log.Warn().Uint64("current_memory", mem.Alloc).Msg("High memory usage detected")
			}
		}
	}
}

// Snapshot metriklerin kopyasını döner
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	summary := make(map[string]ResponseTimeStat, len(m.responseTimes))
	for key, times := range m.responseTimes {
		if len(times) == 0 {
			continue
		}
		sorted := append([]time.Duration(nil), times...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var total time.Duration
		for _, t := range sorted {
			total += t
		}
		summary[key] = ResponseTimeStat{
			Count:     len(sorted),
			AverageMs: ms(total / time.Duration(len(sorted))),
			MaxMs:     ms(sorted[len(sorted)-1]),
			P95Ms:     ms(percentile(sorted, 95)),
		}
	}

	return &MetricsSnapshot{
		TotalRequests:       m.totalRequests,
		ActiveRequests:      m.activeRequests,
		SlowRequests:        m.slowRequests,
		MemoryUsage:         m.memoryUsage,
		Goroutines:          runtime.NumGoroutine(),
		UptimeSeconds:       int64(time.Since(m.startedAt).Seconds()),
		StatusCodeCounts:    copyMap(m.statusCodeCounts),
		EndpointCounts:      copyMap(m.endpointCounts),
		ResponseTimeSummary: summary,
		LastUpdated:         time.Now().UTC(),
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// percentile sıralı dilimden değer seçer
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted))*float64(p)/100.0+0.5) - 1
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func copyMap[K comparable, V any](original map[K]V) map[K]V {
	out := make(map[K]V, len(original))
	for k, v := range original {
		out[k] = v
	}
	return out
}

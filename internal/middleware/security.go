package middleware

import (
	"fmt"
	"net/http"
)

// SecurityConfig güvenlik header'ları. API sadece JSON döndüğü için
// CSP her şeyi kapatır.
type SecurityConfig struct {
	ContentSecurityPolicy string
	HSTSMaxAge            int // 0: HSTS gönderilmez
	FrameOptions          string
	ReferrerPolicy        string
	CustomHeaders         map[string]string
}

// SecurityConfigForEnv production'da HSTS açılır
func SecurityConfigForEnv(appEnv string) *SecurityConfig {
	config := &SecurityConfig{
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		FrameOptions:          "DENY",
		ReferrerPolicy:        "no-referrer",
		CustomHeaders: map[string]string{
			"X-Permitted-Cross-Domain-Policies": "none",
		},
	}
	if appEnv == "production" {
		config.HSTSMaxAge = 63072000 // 2 yıl
	}
	return config
}

// SecurityHeadersMiddleware güvenlik header'larını ekler
func SecurityHeadersMiddleware(config *SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			if config.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", config.ContentSecurityPolicy)
			}
			if config.HSTSMaxAge > 0 {
				h.Set("Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", config.HSTSMaxAge))
			}
			if config.FrameOptions != "" {
				h.Set("X-Frame-Options", config.FrameOptions)
			}
			if config.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", config.ReferrerPolicy)
			}
			for key, value := range config.CustomHeaders {
				h.Set(key, value)
			}

			next.ServeHTTP(w, r)
		})
	}
}

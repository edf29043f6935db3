package validation

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
)

// Config validation middleware ayarları
type Config struct {
	MaxBodySize    int64             // byte
	MaxParamSize   int               // tek query parametresinin azami uzunluğu
	ContentTypes   []string          // POST/PUT için kabul edilen tipler
	JSONValidation bool              // body geçerli JSON olmalı
	QueryRules     map[string]string // parametre adı -> kural
}

// DefaultConfig varsayılan validation ayarları
func DefaultConfig() *Config {
	return &Config{
		MaxBodySize:    1 << 20, // 1MB
		MaxParamSize:   256,
		ContentTypes:   []string{"application/json"},
		JSONValidation: true,
		QueryRules: map[string]string{
			"limit":   RuleNonNegativeInt,
			"offset":  RuleNonNegativeInt,
			"user_id": RuleNonNegativeInt,
			"status":  RuleToken,
			"type":    RuleToken,
			"unread":  RuleBool,
		},
	}
}

// Middleware body ve query doğrulaması yapar, hatada ValidationError ile panic eder
func Middleware(config *Config) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if err := ValidateContent(r, config); err != nil {
				status := http.StatusBadRequest
				if err == errBodyTooLarge {
					status = http.StatusRequestEntityTooLarge
				}
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: status,
					Field:      "body",
					Value:      r.Header.Get("Content-Type"),
				})
			}

			if field, err := ValidateQuery(r, config); err != nil {
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: http.StatusBadRequest,
					Field:      field,
					Value:      r.URL.Query().Get(field),
				})
			}

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int64("content_length", r.ContentLength).
				Msg("Request validation passed")

			next.ServeHTTP(w, r)
		})
	}
}

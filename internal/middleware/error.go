package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/utils"
)

// ErrorHandlingMiddleware panic recovery yapar. Auth/RBAC/validation
// middleware'leri APIError ile panic eder, status code korunur. Beklenmeyen
// panic'ler 500 döner; panic metni sadece ShowStackTrace açıkken görünür.
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				if apiErr, ok := recovered.(errors.APIError); ok {
					logAPIError(apiErr, r)
					resetHeaders(w, config)
					sendErrorResponse(w, r, apiErr.Status(), apiErr.Error(), config, "")
					return
				}

				info := &errors.PanicInfo{
					Value:     recovered,
					Stack:     string(debug.Stack()),
					RequestID: w.Header().Get("X-Request-ID"),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.Header.Get("User-Agent"),
					ClientIP:  utils.GetClientIP(r),
					Timestamp: time.Now(),
				}
				logPanic(info, config)

				message := getErrorMessage(http.StatusInternalServerError, config)
				stack := ""
				if config.ShowStackTrace {
					message = fmt.Sprintf("panic: %v", recovered)
					stack = info.Stack
				}

				resetHeaders(w, config)
				sendErrorResponse(w, r, http.StatusInternalServerError, message, config, stack)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// resetHeaders panic öncesi set edilmiş header'ları temizler
func resetHeaders(w http.ResponseWriter, config *errors.ErrorConfig) {
	for key := range w.Header() {
		if !contains(config.IncludeHeaders, key) {
			w.Header().Del(key)
		}
	}
}

// sendErrorResponse standart hata zarfını gönderir
func sendErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, config *errors.ErrorConfig, stack string) {
	response := errors.NewErrorResponse(w, statusCode,
		truncateString(message, config.MaxErrorLength),
		getErrorMessage(statusCode, config),
	)
	if config.ShowStackTrace {
		response.Stack = stack
	}

	if err := response.Write(w); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Int("status_code", statusCode).
			Msg("Error response JSON encoding failed")
		return
	}

	logError(r, statusCode, message, response.RequestID)
}

// ErrorHandlingMiddlewareForEnv APP_ENV'e göre ayar seçer
func ErrorHandlingMiddlewareForEnv(appEnv string) func(http.Handler) http.Handler {
	return ErrorHandlingMiddleware(errors.ForEnv(appEnv))
}

package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/utils"
)

// logAPIError middleware hatalarını kategorisiyle loglar
func logAPIError(err errors.APIError, r *http.Request) {
	logEvent := log.Warn().
		Str("error_message", err.Error()).
		Int("status_code", err.Status()).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Str("client_ip", utils.GetClientIP(r))

	switch e := err.(type) {
	case *errors.AuthError:
		logEvent.Str("category", "authentication").Msg("Authentication failed")
	case *errors.RBACError:
		logEvent.Str("category", "authorization").
			Str("resource", e.Resource).
			Str("action", e.Action).
			Msg("Authorization failed")
	case *errors.ValidationError:
		logEvent.Str("category", "validation").
			Str("field", e.Field).
			Interface("value", e.Value).
			Msg("Validation failed")
	case *errors.MaintenanceError:
		logEvent.Str("category", "maintenance").Msg("Request rejected during maintenance")
	default:
		logEvent.Str("category", "api_error").Msg("API error occurred")
	}
}

// logPanic beklenmeyen panic'i loglar
func logPanic(panicInfo *errors.PanicInfo, config *errors.ErrorConfig) {
	logEvent := log.Error().
		Str("type", "panic").
		Str("request_id", panicInfo.RequestID).
		Str("method", panicInfo.Method).
		Str("path", panicInfo.Path).
		Str("client_ip", panicInfo.ClientIP).
		Str("user_agent", panicInfo.UserAgent).
		Time("timestamp", panicInfo.Timestamp).
		Interface("panic_value", panicInfo.Value)

	if config.EnablePanicLogs {
		logEvent.Str("stack_trace", panicInfo.Stack)
	}

	logEvent.Msg("Server panic recovered")
}

// logError hata yanıtını status code'a uygun seviyede loglar
func logError(r *http.Request, statusCode int, message string, requestID string) {
	logEvent := log.With().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status_code", statusCode).
		Str("error", message).
		Logger()

	if statusCode >= 500 {
		logEvent.Error().Msg("Server error occurred")
		return
	}
	logEvent.Warn().Msg("Client error occurred")
}

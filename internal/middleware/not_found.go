package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/utils"
)

// NotFoundJSONHandler router.NotFoundHandler için JSON 404
func NotFoundJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeRouterError(w, r, http.StatusNotFound, "endpoint bulunamadı")
	}
}

// MethodNotAllowedJSONHandler router.MethodNotAllowedHandler için JSON 405
func MethodNotAllowedJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeRouterError(w, r, http.StatusMethodNotAllowed, "HTTP metodu bu endpoint için desteklenmiyor")
	}
}

func writeRouterError(w http.ResponseWriter, r *http.Request, statusCode int, errMsg string) {
	resp := errors.NewErrorResponse(w, statusCode, errMsg, http.StatusText(statusCode))
	if err := resp.Write(w); err != nil {
		log.Error().Err(err).Int("status_code", statusCode).Msg("Router error response yazılamadı")
		return
	}

	log.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", utils.GetClientIP(r)).
		Int("status_code", statusCode).
		Msg("Route not matched")
}

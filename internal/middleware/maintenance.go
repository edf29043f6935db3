package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// SettingsSource site ayarlarını okur (önbellekli)
type SettingsSource interface {
	All(ctx context.Context) (map[string]string, error)
}

// MaintenanceMiddleware maintenance_mode açıkken admin olmayan
// kullanıcılara 503 döner. AuthMiddleware'den sonra çalışmalı.
func MaintenanceMiddleware(settings SettingsSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := UserFromContext(r.Context()); ok && user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			values, err := settings.All(r.Context())
			if err != nil {
				// Ayar okunamazsa istek engellenmez
				log.Error().Err(err).Msg("Bakım modu ayarı okunamadı")
				next.ServeHTTP(w, r)
				return
			}

			if on, _ := strconv.ParseBool(values[models.SettingMaintenanceMode]); on {
				panic(&errors.MaintenanceError{Message: "Sistem bakımda. Lütfen daha sonra tekrar deneyin."})
			}

			next.ServeHTTP(w, r)
		})
	}
}

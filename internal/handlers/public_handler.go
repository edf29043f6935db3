package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
)

// Pinger veritabanı sağlık kontrolü (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PublicHandler giriş gerektirmeyen endpoint'ler
type PublicHandler struct {
	db       Pinger
	rigs     interfaces.RigServiceInterface
	methods  interfaces.PaymentMethodServiceInterface
	settings interfaces.SettingServiceInterface
}

// NewPublicHandler yeni handler oluşturur
func NewPublicHandler(db Pinger, rigs interfaces.RigServiceInterface, methods interfaces.PaymentMethodServiceInterface, settings interfaces.SettingServiceInterface) *PublicHandler {
	return &PublicHandler{db: db, rigs: rigs, methods: methods, settings: settings}
}

// Health GET /health
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]interface{}{
		"status":    "ok",
		"database":  "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Health check: veritabanına ulaşılamıyor")
		status["status"] = "degraded"
		status["database"] = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Data: status, Error: "veritabanına ulaşılamıyor"})
		return
	}

	writeSuccess(w, http.StatusOK, status, "")
}

// Plans GET /plans
func (h *PublicHandler) Plans(w http.ResponseWriter, r *http.Request) {
	rigs, err := h.rigs.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rigs, "")
}

// Plan GET /plans/{id}
func (h *PublicHandler) Plan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rig, err := h.rigs.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rig, "")
}

// PaymentMethods GET /payment-methods
func (h *PublicHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.methods.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, methods, "")
}

// PublicSettings GET /settings/public
func (h *PublicHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.Public(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, values, "")
}

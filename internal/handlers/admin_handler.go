package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/middleware"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// MetricsSource istek metrikleri (middleware.Metrics)
type MetricsSource interface {
	Snapshot() *middleware.MetricsSnapshot
}

// AdminHandler admin paneli endpoint'leri
type AdminHandler struct {
	users       interfaces.UserServiceInterface
	admin       interfaces.AdminServiceInterface
	deposits    interfaces.DepositServiceInterface
	withdrawals interfaces.WithdrawalServiceInterface
	rigs        interfaces.RigServiceInterface
	methods     interfaces.PaymentMethodServiceInterface
	settings    interfaces.SettingServiceInterface
	metrics     MetricsSource
}

// AdminHandlerDeps AdminHandler bağımlılıkları
type AdminHandlerDeps struct {
	Users          interfaces.UserServiceInterface
	Admin          interfaces.AdminServiceInterface
	Deposits       interfaces.DepositServiceInterface
	Withdrawals    interfaces.WithdrawalServiceInterface
	Rigs           interfaces.RigServiceInterface
	PaymentMethods interfaces.PaymentMethodServiceInterface
	Settings       interfaces.SettingServiceInterface
	Metrics        MetricsSource
}

// NewAdminHandler yeni handler oluşturur
func NewAdminHandler(deps AdminHandlerDeps) *AdminHandler {
	return &AdminHandler{
		users:       deps.Users,
		admin:       deps.Admin,
		deposits:    deps.Deposits,
		withdrawals: deps.Withdrawals,
		rigs:        deps.Rigs,
		methods:     deps.PaymentMethods,
		settings:    deps.Settings,
		metrics:     deps.Metrics,
	}
}

// Stats GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats, "")
}

// Metrics GET /admin/metrics
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.metrics.Snapshot(), "")
}

// Users GET /admin/users?search=
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	users, total, err := h.users.List(r.Context(), r.URL.Query().Get("search"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "users", users, len(users), total, p, "")
}

// User GET /admin/users/{id}
func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, user, "")
}

// UpdateUser PUT /admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.AdminUpdateUserRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.AdminUpdate(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, user, "Kullanıcı güncellendi")
}

// AdjustBalance POST /admin/users/{id}/balance
func (h *AdminHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.AdjustBalanceRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	actor := actorFrom(r)
	user, err := h.admin.AdjustBalance(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().
		Int("admin_id", actor.UserID).
		Int("user_id", id).
		Str("amount", req.Amount.String()).
		Msg("Manuel bakiye düzeltmesi yapıldı")
	writeSuccess(w, http.StatusOK, user, "Bakiye güncellendi")
}

// Deposits GET /admin/deposits?status=&user_id=
func (h *AdminHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	deposits, total, err := h.deposits.List(r.Context(), queryInt(r, "user_id"), r.URL.Query().Get("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "deposits", deposits, len(deposits), total, p, "")
}

// ApproveDeposit POST /admin/deposits/{id}/approve
func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	deposit, err := h.deposits.Approve(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, deposit, "Yatırım onaylandı")
}

// RejectDeposit POST /admin/deposits/{id}/reject
func (h *AdminHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.review(w, r)
	if !ok {
		return
	}

	deposit, err := h.deposits.Reject(r.Context(), actorFrom(r), id, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, deposit, "Yatırım reddedildi")
}

// Withdrawals GET /admin/withdrawals?status=&user_id=
func (h *AdminHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	withdrawals, total, err := h.withdrawals.List(r.Context(), queryInt(r, "user_id"), r.URL.Query().Get("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "withdrawals", withdrawals, len(withdrawals), total, p, "")
}

// ApproveWithdrawal POST /admin/withdrawals/{id}/approve {tx_hash}
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.review(w, r)
	if !ok {
		return
	}

	withdrawal, err := h.withdrawals.Approve(r.Context(), actorFrom(r), id, req.TxHash)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, withdrawal, "Çekim onaylandı")
}

// RejectWithdrawal POST /admin/withdrawals/{id}/reject {note}
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.review(w, r)
	if !ok {
		return
	}

	withdrawal, err := h.withdrawals.Reject(r.Context(), actorFrom(r), id, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, withdrawal, "Çekim reddedildi, tutar iade edildi")
}

// review path id ve opsiyonel onay/red body'sini okur
func (h *AdminHandler) review(w http.ResponseWriter, r *http.Request) (int, models.ReviewRequest, bool) {
	var req models.ReviewRequest

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return 0, req, false
	}
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, r, err)
		return 0, req, false
	}
	req.Normalize()
	return id, req, true
}

// Rigs GET /admin/rigs (pasifler dahil)
func (h *AdminHandler) Rigs(w http.ResponseWriter, r *http.Request) {
	rigs, err := h.rigs.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rigs, "")
}

// CreateRig POST /admin/rigs
func (h *AdminHandler) CreateRig(w http.ResponseWriter, r *http.Request) {
	var req models.RigRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	rig, err := h.rigs.Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, rig, "Rig oluşturuldu")
}

// UpdateRig PUT /admin/rigs/{id}
func (h *AdminHandler) UpdateRig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.RigRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	rig, err := h.rigs.Update(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rig, "Rig güncellendi")
}

// DeleteRig DELETE /admin/rigs/{id}. Satın alınmış rig'ler etkilenmez,
// sadece satış durur.
func (h *AdminHandler) DeleteRig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.rigs.Deactivate(r.Context(), actorFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Rig satıştan kaldırıldı")
}

// PaymentMethods GET /admin/payment-methods
func (h *AdminHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.methods.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, methods, "")
}

// CreatePaymentMethod POST /admin/payment-methods
func (h *AdminHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentMethodRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	method, err := h.methods.Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, method, "Ödeme yöntemi eklendi")
}

// UpdatePaymentMethod PUT /admin/payment-methods/{id}
func (h *AdminHandler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.PaymentMethodRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	method, err := h.methods.Update(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, method, "Ödeme yöntemi güncellendi")
}

// DeletePaymentMethod DELETE /admin/payment-methods/{id}
func (h *AdminHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.methods.Delete(r.Context(), actorFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Ödeme yöntemi silindi")
}

// Settings GET /admin/settings
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, values, "")
}

// UpdateSettings PUT /admin/settings {key: value}
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw, false); err != nil {
		writeError(w, r, err)
		return
	}
	values, err := settingValues(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.settings.Update(r.Context(), actorFrom(r), values)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, updated, "Ayarlar güncellendi")
}

// settingValues string, sayı ve bool değerleri metne çevirir.
// Nesne, dizi ve null kabul edilmez.
func settingValues(raw map[string]json.RawMessage) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		text := strings.TrimSpace(string(msg))
		switch {
		case strings.HasPrefix(text, `"`):
			var s string
			if err := json.Unmarshal(msg, &s); err != nil {
				return nil, fmt.Errorf("%w: %s geçersiz metin", errBadRequest, key)
			}
			values[key] = s
		case text == "true" || text == "false":
			values[key] = text
		case text == "null":
			return nil, fmt.Errorf("%w: %s boş olamaz", errBadRequest, key)
		default:
			var n json.Number
			if err := json.Unmarshal(msg, &n); err != nil {
				return nil, fmt.Errorf("%w: %s metin, sayı veya bool olmalı", errBadRequest, key)
			}
			values[key] = n.String()
		}
	}
	return values, nil
}

// Transactions GET /admin/transactions?user_id=&type=
func (h *AdminHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	txs, total, err := h.admin.ListTransactions(r.Context(), queryInt(r, "user_id"), r.URL.Query().Get("type"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "transactions", txs, len(txs), total, p, "")
}

// AuditLogs GET /admin/audit-logs?type=
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	logs, total, err := h.admin.ListAuditLogs(r.Context(), r.URL.Query().Get("type"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "audit_logs", logs, len(logs), total, p, "")
}

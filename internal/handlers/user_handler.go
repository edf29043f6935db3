package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// UserHandler giriş yapmış kullanıcının panel endpoint'leri
type UserHandler struct {
	users         interfaces.UserServiceInterface
	dashboard     interfaces.DashboardServiceInterface
	rigs          interfaces.RigServiceInterface
	earnings      interfaces.EarningsServiceInterface
	deposits      interfaces.DepositServiceInterface
	withdrawals   interfaces.WithdrawalServiceInterface
	notifications interfaces.NotificationServiceInterface
}

// UserHandlerDeps UserHandler bağımlılıkları
type UserHandlerDeps struct {
	Users         interfaces.UserServiceInterface
	Dashboard     interfaces.DashboardServiceInterface
	Rigs          interfaces.RigServiceInterface
	Earnings      interfaces.EarningsServiceInterface
	Deposits      interfaces.DepositServiceInterface
	Withdrawals   interfaces.WithdrawalServiceInterface
	Notifications interfaces.NotificationServiceInterface
}

// NewUserHandler yeni handler oluşturur
func NewUserHandler(deps UserHandlerDeps) *UserHandler {
	return &UserHandler{
		users:         deps.Users,
		dashboard:     deps.Dashboard,
		rigs:          deps.Rigs,
		earnings:      deps.Earnings,
		deposits:      deps.Deposits,
		withdrawals:   deps.Withdrawals,
		notifications: deps.Notifications,
	}
}

// Dashboard GET /user/dashboard
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Dashboard(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats, "")
}

// Profile GET /user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, currentUser(r), "")
}

// UpdateProfile PUT /user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), currentUser(r).ID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, user, "Profil güncellendi")
}

// ChangePassword PUT /user/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), currentUser(r).ID, &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Şifre değiştirildi")
}

// Rigs GET /user/rigs
func (h *UserHandler) Rigs(w http.ResponseWriter, r *http.Request) {
	rigs, err := h.rigs.ListUserRigs(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, rigs, "")
}

// PurchaseRig POST /user/rigs
func (h *UserHandler) PurchaseRig(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRigRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, badRequest(err))
		return
	}

	user := currentUser(r)
	result, err := h.rigs.Purchase(r.Context(), user.ID, req.RigID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().
		Int("user_id", user.ID).
		Int("rig_id", req.RigID).
		Str("balance", result.Balance.String()).
		Msg("Rig satın alındı")
	writeSuccess(w, http.StatusCreated, result, "Rig satın alındı")
}

// CollectEarnings POST /user/earnings/collect
func (h *UserHandler) CollectEarnings(w http.ResponseWriter, r *http.Request) {
	result, err := h.earnings.Collect(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Toplanacak kazanç yok"
	if result.Amount.IsPositive() {
		message = "Kazanç bakiyeye eklendi"
	}
	writeSuccess(w, http.StatusOK, result, message)
}

// Deposits GET /user/deposits
func (h *UserHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	deposits, total, err := h.deposits.List(r.Context(), currentUser(r).ID, r.URL.Query().Get("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "deposits", deposits, len(deposits), total, p, "")
}

// CreateDeposit POST /user/deposits
func (h *UserHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDepositRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	deposit, err := h.deposits.Create(r.Context(), currentUser(r).ID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, deposit, "Yatırım talebi alındı, onay bekleniyor")
}

// Withdrawals GET /user/withdrawals
func (h *UserHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	withdrawals, total, err := h.withdrawals.List(r.Context(), currentUser(r).ID, r.URL.Query().Get("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "withdrawals", withdrawals, len(withdrawals), total, p, "")
}

// CreateWithdrawal POST /user/withdrawals
func (h *UserHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWithdrawalRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	withdrawal, err := h.withdrawals.Create(r.Context(), currentUser(r).ID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, withdrawal, "Çekim talebi alındı, onay bekleniyor")
}

// Transactions GET /user/transactions
func (h *UserHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	txs, total, err := h.dashboard.Transactions(r.Context(), currentUser(r).ID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "transactions", txs, len(txs), total, p, "")
}

// Notifications GET /user/notifications?unread=true
func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))

	items, total, err := h.notifications.List(r.Context(), currentUser(r).ID, unreadOnly, p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "notifications", items, len(items), total, p, "")
}

// MarkNotificationRead PUT /user/notifications/{id}/read
func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), currentUser(r).ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Bildirim okundu")
}

// MarkAllNotificationsRead PUT /user/notifications/read-all
func (h *UserHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notifications.MarkAllRead(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int64{"updated": updated}, "Tüm bildirimler okundu")
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// AuthHandler kayıt, giriş ve token yenileme
type AuthHandler struct {
	users interfaces.UserServiceInterface
}

// NewAuthHandler yeni handler oluşturur
func NewAuthHandler(users interfaces.UserServiceInterface) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int("user_id", resp.User.ID).Msg("Yeni kullanıcı kaydedildi")
	writeSuccess(w, http.StatusCreated, resp, "Kayıt başarılı")
}

// Login POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp, "Giriş başarılı")
}

type refreshRequest struct {
	Token string `json:"token"`
}

// Refresh POST /auth/refresh. Süresi dolmuş token Authorization
// header'ında ya da body'de gelir.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeError(w, r, err)
			return
		}
		token = strings.TrimSpace(req.Token)
	}
	if token == "" {
		writeError(w, r, fmt.Errorf("%w: token gerekli", errBadRequest))
		return
	}

	resp, err := h.users.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp, "Token yenilendi")
}

// Me GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, currentUser(r), "")
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/middleware"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
	"github.com/onerilhan/go-mining-api/internal/services"
	"github.com/onerilhan/go-mining-api/internal/utils"
)

// Response standart yanıt zarfı
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// errBadRequest handler seviyesindeki istek hataları (JSON, path id)
var errBadRequest = errors.New("geçersiz istek")

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Int("status_code", status).Msg("Response JSON encoding failed")
	}
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, Response{Success: true, Data: data, Message: message})
}

// writeList sayfalı liste yanıtı
func writeList(w http.ResponseWriter, key string, items interface{}, count, total int, p page, message string) {
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		key:           items,
		"total_count": total,
		"count":       count,
		"limit":       p.Limit,
		"offset":      p.Offset,
	}, message)
}

// statusFor domain hatasını HTTP koduna çevirir
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrPurchaseLimit),
		errors.Is(err, services.ErrRigUnavailable),
		errors.Is(err, services.ErrBelowMinimum),
		errors.Is(err, services.ErrTicketClosed),
		errors.Is(err, auth.ErrTokenStillValid):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountSuspended),
		errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError hatayı zarfla yazar. 500'lerde iç hata metni gizlenir.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()

	event := log.Warn()
	if status >= 500 {
		event = log.Error()
		message = "beklenmeyen bir hata oluştu"
	}
	event.Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status_code", status).
		Msg("İstek başarısız")

	writeJSON(w, status, Response{Success: false, Error: message, Message: http.StatusText(status)})
}

// decodeJSON body'yi çözer; boş body izinliyse sıfır değer kalır
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: geçersiz JSON formatı: %v", errBadRequest, err)
	}
	return nil
}

// page limit/offset query parametreleri
type page struct {
	Limit  int
	Offset int
}

func parsePage(r *http.Request) page {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, offset = repository.NormalizePage(limit, offset)
	return page{Limit: limit, Offset: offset}
}

// pathID route'taki {id} değeri
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: geçersiz id", errBadRequest)
	}
	return id, nil
}

// queryInt opsiyonel tam sayı query parametresi
func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// currentUser AuthMiddleware'in yüklediği kullanıcı. Route korumasız
// bağlanırsa panic eder, ErrorHandlingMiddleware 500'e çevirir.
func currentUser(r *http.Request) *models.User {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		panic("handlers: kullanıcı context'te yok, AuthMiddleware eksik")
	}
	return user
}

// actorFrom admin işlemleri için audit bilgisi
func actorFrom(r *http.Request) models.Actor {
	return models.Actor{
		UserID:    currentUser(r).ID,
		IPAddress: utils.GetClientIP(r),
		UserAgent: utils.UserAgent(r),
	}
}

// badRequest doğrulama hatasını 400'e eşlenecek şekilde sarar
func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

package handlers

import (
	"net/http"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// TicketHandler destek talepleri. Aynı handler admin route'larına da
// bağlanır; sahiplik kontrolü servis katmanındadır.
type TicketHandler struct {
	tickets interfaces.TicketServiceInterface
}

// NewTicketHandler yeni handler oluşturur
func NewTicketHandler(tickets interfaces.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List GET /tickets (kendi ticket'ları)
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, currentUser(r).ID)
}

// AdminList GET /admin/tickets?status=&user_id=
func (h *TicketHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, queryInt(r, "user_id"))
}

func (h *TicketHandler) list(w http.ResponseWriter, r *http.Request, userID int) {
	p := parsePage(r)
	tickets, total, err := h.tickets.List(r.Context(), userID, r.URL.Query().Get("status"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "tickets", tickets, len(tickets), total, p, "")
}

// Create POST /tickets
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTicketRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.tickets.Create(r.Context(), currentUser(r).ID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, ticket, "Destek talebi oluşturuldu")
}

// Get GET /tickets/{id}
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := h.tickets.Get(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, ticket, "")
}

// Reply POST /tickets/{id}/reply ve POST /admin/tickets/{id}/reply
func (h *TicketHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.TicketReplyRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.tickets.Reply(r.Context(), currentUser(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, msg, "Yanıt eklendi")
}

// Close PUT /tickets/{id}/close
func (h *TicketHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.tickets.Close(r.Context(), currentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Ticket kapatıldı")
}

// SetStatus PUT /admin/tickets/{id}/status
func (h *TicketHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.TicketStatusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.tickets.SetStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status}, "Ticket durumu güncellendi")
}

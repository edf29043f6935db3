package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse middleware kaynaklı hata zarfı. Handler zarfıyla aynı
// success/error/message alanlarını taşır.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      int    `json:"code"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
	Stack     string `json:"stack,omitempty"` // Sadece development'ta
}

// PanicInfo panic durumu hakkında bilgi
type PanicInfo struct {
	Value     interface{}
	Stack     string
	RequestID string
	Method    string
	Path      string
	UserAgent string
	ClientIP  string
	Timestamp time.Time
}

// NewErrorResponse zarfı doldurur, request ID'yi response header'ından alır
func NewErrorResponse(w http.ResponseWriter, statusCode int, errMsg, message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errMsg,
		Message:   message,
		Code:      statusCode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
	}
}

// Write zarfı JSON olarak yazar
func (e *ErrorResponse) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	return json.NewEncoder(w).Encode(e)
}

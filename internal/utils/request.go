package utils

import (
	"net"
	"net/http"
	"strings"
	"unicode/utf8"
)

// proxyHeaders sırayla denenir; ilk geçerli IP kullanılır
var proxyHeaders = []string{"X-Forwarded-For", "X-Real-IP", "CF-Connecting-IP"}

// MaxUserAgentLength audit_logs.user_agent kolon sınırı
const MaxUserAgentLength = 255

// GetClientIP isteğin gerçek client IP'si. Proxy header'larındaki değer
// IP olarak parse edilemezse RemoteAddr'ye düşülür.
func GetClientIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For zincirinde ilk adres client
		first, _, _ := strings.Cut(value, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserAgent audit kaydına sığacak şekilde kısaltılmış User-Agent
func UserAgent(r *http.Request) string {
	ua := strings.TrimSpace(r.UserAgent())
	if len(ua) <= MaxUserAgentLength {
		return ua
	}
	ua = ua[:MaxUserAgentLength]
	for !utf8.ValidString(ua) {
		ua = ua[:len(ua)-1]
	}
	return ua
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded zincir", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:443", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:443", "198.51.100.7"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "2001:db8::1"}, "10.0.0.1:443", "2001:db8::1"},
		{"bozuk header atlanır", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "198.51.100.8"}, "10.0.0.1:443", "198.51.100.8"},
		{"remote addr", nil, "192.0.2.4:51234", "192.0.2.4"},
		{"ipv6 remote addr", nil, "[2001:db8::2]:8080", "2001:db8::2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}

func TestUserAgent_Truncates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "  curl/8.5.0  ")
	assert.Equal(t, "curl/8.5.0", UserAgent(req))

	req.Header.Set("User-Agent", strings.Repeat("ş", 200))
	ua := UserAgent(req)
	assert.LessOrEqual(t, len(ua), MaxUserAgentLength)
	assert.True(t, utf8.ValidString(ua))
}

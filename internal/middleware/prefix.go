package middleware

import (
	"net/http"
	"strings"
)

// StripPrefix "/api" ile gelen istekleri prefix'siz route'lara yönlendirir.
// Router eşleşmesinden önce çalışmalı, bu yüzden router.Use ile değil
// router'ı sararak eklenir.
func StripPrefix(prefix string) func(http.Handler) http.Handler {
	prefix = "/" + strings.Trim(prefix, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				r2 := r.Clone(r.Context())
				r2.URL.Path = strings.TrimPrefix(path, prefix)
				if r2.URL.Path == "" {
					r2.URL.Path = "/"
				}
				r2.URL.RawPath = ""
				next.ServeHTTP(w, r2)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

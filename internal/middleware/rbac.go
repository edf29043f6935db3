package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// Permission bir yetkiyi temsil eder
type Permission string

const (
	PermMine          Permission = "mine"           // rig satın alma, kazanç toplama
	PermManageFunds   Permission = "manage_funds"   // yatırım/çekim talebi
	PermSupport       Permission = "support"        // ticket açma/yanıtlama
	PermManageUsers   Permission = "manage_users"   // admin kullanıcı işlemleri
	PermApproveFunds  Permission = "approve_funds"  // yatırım/çekim onayı
	PermManageCatalog Permission = "manage_catalog" // rig ve ödeme yöntemi CRUD
	PermSystem        Permission = "system"         // ayarlar, audit, metrics
)

// RolePermissions her rolün yetkileri. Admin kullanıcı yetkilerini de taşır.
var RolePermissions = map[string][]Permission{
	models.RoleUser: {
		PermMine,
		PermManageFunds,
		PermSupport,
	},
	models.RoleAdmin: {
		PermMine,
		PermManageFunds,
		PermSupport,
		PermManageUsers,
		PermApproveFunds,
		PermManageCatalog,
		PermSystem,
	},
}

// RequirePermission kullanıcının rolünde yetki yoksa 403 döner.
// AuthMiddleware'den sonra çalışmalı.
func RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error().
					Str("path", r.URL.Path).
					Msg("RBAC: User context not found - AuthMiddleware might be missing")
				panic(&errors.AuthError{Message: "Authentication required", StatusCode: http.StatusUnauthorized})
			}

			if !hasPermission(user.Role, permission) {
				log.Warn().
					Int("user_id", user.ID).
					Str("role", user.Role).
					Str("required_permission", string(permission)).
					Str("path", r.URL.Path).
					Msg("RBAC: Access denied")

				panic(&errors.RBACError{
					Message:    "Bu işlem için yetkiniz bulunmuyor",
					StatusCode: http.StatusForbidden,
					Resource:   r.URL.Path,
					Action:     r.Method,
				})
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasPermission(role string, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// RequireAdmin ayarlar, audit, metrikler ve destek yönetimi gibi sistem route'ları için
func RequireAdmin() func(http.Handler) http.Handler {
	return RequirePermission(PermSystem)
}

package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/middleware/errors"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// ContextKey middleware'de context için key tipi
type ContextKey string

// CurrentUserKey token sahibinin veritabanındaki güncel kaydı
const CurrentUserKey ContextKey = "current_user"


// TokenValidator bearer token doğrulaması
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// UserLoader token sahibini yükler. Rol ve durum her istekte
// veritabanından okunur, böylece askıya alma anında etkili olur.
type UserLoader interface {
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// AuthMiddleware bearer token'ı doğrular, kullanıcıyı yükler ve context'e koyar
func AuthMiddleware(tokens TokenValidator, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				panic(&errors.AuthError{Message: "Authorization header gerekli", StatusCode: http.StatusUnauthorized})
			}

			tokenParts := strings.Fields(authHeader)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
				panic(&errors.AuthError{Message: "Authorization format: 'Bearer <token>'", StatusCode: http.StatusUnauthorized})
			}

			claims, err := tokens.ValidateToken(tokenParts[1])
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Token doğrulama başarısız")
				panic(&errors.AuthError{Message: "Geçersiz veya süresi dolmuş token", StatusCode: http.StatusUnauthorized})
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if stderrors.Is(err, repository.ErrNotFound) {
					panic(&errors.AuthError{Message: "Kullanıcı bulunamadı", StatusCode: http.StatusUnauthorized})
				}
				panic(err)
			}

			if !user.IsActive() {
				panic(&errors.AuthError{Message: "Hesap askıya alınmış", StatusCode: http.StatusForbidden})
			}

			ctx := WithUser(r.Context(), user)

			log.Debug().
				Int("user_id", user.ID).
				Str("role", user.Role).
				Str("path", r.URL.Path).
				Msg("Authentication successful")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext AuthMiddleware'in yüklediği kullanıcı
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(*models.User)
	return user, ok && user != nil
}

// WithUser context'e kullanıcı ekler
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Token hataları
var (
	ErrTokenStillValid = errors.New("token hala geçerli, refresh gerekmiyor")
	ErrInvalidToken    = errors.New("geçersiz token")
)

// Claims JWT payload'ını temsil eder
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager token üretimi ve doğrulaması yapar
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewManager yeni JWT manager oluşturur
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "go-mining-api",
		now:    time.Now,
	}
}

// TTL token geçerlilik süresi
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken kullanıcı için JWT token oluşturur
func (m *Manager) GenerateToken(userID int, email, role string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, nil
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, m.keyFunc,
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// RefreshToken süresi dolmuş (ama imzası geçerli) token'dan yenisini üretir
func (m *Manager) RefreshToken(tokenString string) (string, *Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, m.keyFunc,
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)

	if err == nil && token.Valid {
		return "", nil, ErrTokenStillValid
	}

	if token == nil || !errors.Is(err, jwt.ErrTokenExpired) {
		log.Warn().Err(err).Msg("Token refresh reddedildi")
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", nil, ErrInvalidToken
	}

	newToken, err := m.GenerateToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", nil, err
	}

	log.Info().Int("user_id", claims.UserID).Msg("Token refresh edildi")
	return newToken, claims, nil
}

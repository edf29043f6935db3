package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword şifreyi bcrypt ile hash'ler
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("şifre hash'lenemedi: %w", err)
	}
	return string(hash), nil
}

// CheckPassword hash ile düz şifreyi karşılaştırır
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

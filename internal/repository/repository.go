package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Repository hataları. Servis katmanı errors.Is ile kontrol eder.
var (
	ErrNotFound          = errors.New("kayıt bulunamadı")
	ErrDuplicate         = errors.New("kayıt zaten mevcut")
	ErrInsufficientFunds = errors.New("yetersiz bakiye")
	ErrNotPending        = errors.New("kayıt beklemede değil")
)

// scanner *sql.Row ve *sql.Rows ortak arayüzü
type scanner interface {
	Scan(dest ...interface{}) error
}

// isUniqueViolation PostgreSQL 23505 hatası mı
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// NormalizePage limit/offset değerlerini güvenli aralığa çeker
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

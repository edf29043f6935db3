package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

var errBodyTooLarge = errors.New("request body çok büyük")

// ValidateContent POST/PUT body'sinin boyutunu, tipini ve JSON geçerliliğini kontrol eder
func ValidateContent(r *http.Request, config *Config) error {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return nil
	}

	if r.ContentLength > config.MaxBodySize {
		return errBodyTooLarge
	}

	body, err := readBody(r, config.MaxBodySize)
	if err != nil {
		return err
	}

	// Gövdesiz aksiyonlar (approve, collect, read-all) Content-Type göndermeyebilir
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := validateContentType(r, config.ContentTypes); err != nil {
		return err
	}

	if config.JSONValidation && !json.Valid(body) {
		return fmt.Errorf("geçersiz JSON formatı")
	}
	return nil
}

// readBody body'yi sınırlı okur ve handler için geri koyar
func readBody(r *http.Request, maxSize int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	r.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("request body okunamadı: %w", err)
	}
	if int64(len(body)) > maxSize {
		return nil, errBodyTooLarge
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func validateContentType(r *http.Request, allowedTypes []string) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("Content-Type header gerekli")
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("geçersiz Content-Type: %s", contentType)
	}

	for _, allowedType := range allowedTypes {
		if mediaType == allowedType {
			return nil
		}
	}
	return fmt.Errorf("desteklenmeyen Content-Type: %s. İzin verilen tipler: %s",
		mediaType, strings.Join(allowedTypes, ", "))
}

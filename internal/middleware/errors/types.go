package errors

// APIError middleware'lerin panic ile fırlattığı, status code taşıyan hata
type APIError interface {
	error
	Status() int
}

// AuthError authentication hatası (401, askıya alınmış hesapta 403)
type AuthError struct {
	Message    string
	StatusCode int
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Status() int   { return e.StatusCode }

// RBACError rol yetersizliği
type RBACError struct {
	Message    string
	StatusCode int
	Resource   string
	Action     string
}

func (e *RBACError) Error() string { return e.Message }
func (e *RBACError) Status() int   { return e.StatusCode }

// ValidationError body/content-type doğrulama hatası
type ValidationError struct {
	Message    string
	StatusCode int
	Field      string
	Value      interface{}
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Status() int   { return e.StatusCode }

// MaintenanceError bakım modu aktifken kullanıcı isteklerine döner
type MaintenanceError struct {
	Message string
}

func (e *MaintenanceError) Error() string { return e.Message }
func (e *MaintenanceError) Status() int   { return 503 }

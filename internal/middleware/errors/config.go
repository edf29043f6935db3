package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace  bool           // Panic metni ve stack response'a eklenir (sadece development)
	CustomErrorMap  map[int]string // Status code'a göre kullanıcıya gösterilen mesaj
	IncludeHeaders  []string       // Panic sonrası korunacak header'lar
	EnablePanicLogs bool           // Stack trace loglansın mı
	MaxErrorLength  int
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			400: "Geçersiz istek. Lütfen parametrelerinizi kontrol edin.",
			401: "Yetkilendirme gerekli. Lütfen giriş yapın.",
			403: "Bu işlem için yetkiniz bulunmuyor.",
			404: "Aradığınız kaynak bulunamadı.",
			405: "HTTP metodu bu endpoint için desteklenmiyor.",
			409: "Çakışma. Bu işlem şu anda gerçekleştirilemiyor.",
			429: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
			500: "Sunucu hatası. Bu durum teknik ekibimize bildirildi.",
			503: "Servis geçici olarak kullanılamıyor. Lütfen daha sonra deneyin.",
		},
		IncludeHeaders:  []string{"X-Request-ID", "X-Ratelimit-Remaining"},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.CustomErrorMap[500] = "Bir hata oluştu. Teknik ekibimiz bilgilendirildi."
	config.MaxErrorLength = 200
	return config
}

// ForEnv APP_ENV değerine göre ayar seçer
func ForEnv(appEnv string) *ErrorConfig {
	if appEnv == "production" {
		return ProductionErrorConfig()
	}
	return DevelopmentErrorConfig()
}

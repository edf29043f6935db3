package migration

import (
	"time"
)

// Direction migration yönü
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// HealthStatus şemanın genel durumu
type HealthStatus string

const (
	HealthOK      HealthStatus = "healthy" // Hepsi uygulanmış
	HealthPending HealthStatus = "pending" // Bekleyen migration var
	HealthDirty   HealthStatus = "dirty"   // Uygulanmış dosya sonradan değişmiş
)

// Migration tek bir version'ın up/down dosya çifti
type Migration struct {
	Version      int64      `json:"version"` // 20260101000001
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"` // Dosyanın ilk yorum satırı
	UpSQL        string     `json:"-"`
	DownSQL      string     `json:"-"`
	UpChecksum   string     `json:"up_checksum"`
	DownChecksum string     `json:"down_checksum,omitempty"`
	HasDownFile  bool       `json:"has_down_file"`
	Applied      bool       `json:"applied"`
	AppliedAt    *time.Time `json:"applied_at,omitempty"`
	Dirty        bool       `json:"dirty,omitempty"`
}

// Status migrate status çıktısı
type Status struct {
	CurrentVersion int64        `json:"current_version"`
	Migrations     []Migration  `json:"migrations"`
	TotalCount     int          `json:"total_count"`
	AppliedCount   int          `json:"applied_count"`
	PendingCount   int          `json:"pending_count"`
	DirtyCount     int          `json:"dirty_count"`
	LastAppliedAt  *time.Time   `json:"last_applied_at,omitempty"`
	Health         HealthStatus `json:"health"`
}

// Result tek migration çalıştırmasının sonucu
type Result struct {
	Version       int64         `json:"version"`
	Name          string        `json:"name"`
	Direction     Direction     `json:"direction"`
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
	Statements    int           `json:"statements"`
	AffectedRows  int64         `json:"affected_rows"`
	ExecutionTime time.Duration `json:"execution_time"`
	DryRun        bool          `json:"dry_run,omitempty"`
}

// Config runner ayarları
type Config struct {
	MigrationsPath     string // Create ve disk kaynağı için klasör
	TableName          string
	LockKey            int64 // pg_advisory_lock anahtarı, aynı anda tek runner
	ValidateChecksums  bool
	AllowDirty         bool // Checksum uyumsuzluğunda sadece uyar
	RequireDownFiles   bool
	TransactionTimeout time.Duration
	DryRun             bool
	Verbose            bool
	AppliedBy          string // Takip tablosundaki applied_by değeri
}

// DefaultConfig varsayılan ayarlar
func DefaultConfig(path string) *Config {
	if path == "" {
		path = "./migrations"
	}
	return &Config{
		MigrationsPath:     path,
		TableName:          "schema_migrations",
		LockKey:            7_246_001,
		ValidateChecksums:  true,
		TransactionTimeout: 5 * time.Minute,
		AppliedBy:          "system",
	}
}

// CLIConfig cmd/migrate için: detaylı çıktı, down dosyası zorunlu
func CLIConfig(path string) *Config {
	c := DefaultConfig(path)
	c.Verbose = true
	c.RequireDownFiles = true
	c.TransactionTimeout = 30 * time.Minute
	c.AppliedBy = "cli"
	return c
}

// StartupConfig AUTO_MIGRATE için. Development'ta değişmiş dosya
// uygulamayı durdurmaz.
func StartupConfig(path, appEnv string) *Config {
	c := DefaultConfig(path)
	c.AppliedBy = "startup"
	if appEnv != "production" {
		c.AllowDirty = true
	}
	return c
}

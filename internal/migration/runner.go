package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

// Runner migration dosyalarını okur, uygular ve geri alır
type Runner struct {
	db     *sql.DB
	source fs.FS
	config *Config
}

// NewRunner runner oluşturur. source nil ise MigrationsPath diskten okunur.
func NewRunner(db *sql.DB, source fs.FS, config *Config) *Runner {
	if config == nil {
		config = DefaultConfig("")
	}
	if source == nil {
		source = os.DirFS(config.MigrationsPath)
	}
	return &Runner{db: db, source: source, config: config}
}

// Initialize takip tablosunu oluşturur
func (r *Runner) Initialize(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			up_checksum VARCHAR(64) NOT NULL,
			down_checksum VARCHAR(64),
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			execution_time_ms INTEGER NOT NULL DEFAULT 0,
			applied_by VARCHAR(50) NOT NULL DEFAULT 'system'
		)`, r.config.TableName)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migration takip tablosu oluşturulamadı: %w", err)
	}
	return nil
}

// withLock fn'i pg advisory lock altında çalıştırır. Birden fazla replika
// aynı anda AUTO_MIGRATE ile açılırsa ikincisi ilkini bekler.
func (r *Runner) withLock(ctx context.Context, fn func() error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("migration bağlantısı alınamadı: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", r.config.LockKey); err != nil {
		return fmt.Errorf("migration kilidi alınamadı: %w", err)
	}
	defer func() {
		// ctx iptal edilmiş olabilir, kilit yine de bırakılmalı
		if _, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", r.config.LockKey); err != nil {
			log.Warn().Err(err).Msg("Migration kilidi bırakılamadı")
		}
	}()

	return fn()
}

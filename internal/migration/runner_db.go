package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// undefinedTable PostgreSQL 42P01
const undefinedTable = "42P01"

type appliedRecord struct {
	version      int64
	upChecksum   string
	downChecksum sql.NullString
	appliedAt    time.Time
}

// loadApplied takip tablosundaki kayıtlar; tablo yoksa boş map
func (r *Runner) loadApplied(ctx context.Context) (map[int64]appliedRecord, error) {
	query := fmt.Sprintf(`SELECT version, up_checksum, down_checksum, applied_at FROM %s ORDER BY version`, r.config.TableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return map[int64]appliedRecord{}, nil
		}
		return nil, fmt.Errorf("uygulanmış migration'lar okunamadı: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]appliedRecord)
	for rows.Next() {
		var rec appliedRecord
		if err := rows.Scan(&rec.version, &rec.upChecksum, &rec.downChecksum, &rec.appliedAt); err != nil {
			return nil, fmt.Errorf("migration kaydı okunamadı: %w", err)
		}
		applied[rec.version] = rec
	}
	return applied, rows.Err()
}

// load dosyaları takip tablosuyla birleştirir. Değişmiş dosya AllowDirty
// kapalıyken hata döner.
func (r *Runner) load(ctx context.Context) ([]Migration, error) {
	migrations, err := r.LoadFiles()
	if err != nil {
		return nil, err
	}
	applied, err := r.loadApplied(ctx)
	if err != nil {
		return nil, err
	}

	for i := range migrations {
		m := &migrations[i]
		rec, ok := applied[m.Version]
		if !ok {
			continue
		}
		appliedAt := rec.appliedAt
		m.Applied = true
		m.AppliedAt = &appliedAt

		if !r.config.ValidateChecksums {
			continue
		}
		if err := compareChecksums(*m, rec); err != nil {
			m.Dirty = true
			if !r.config.AllowDirty {
				return nil, fmt.Errorf("migration %d: %w", m.Version, err)
			}
			log.Warn().Err(err).Int64("version", m.Version).Msg("Uygulanmış migration dosyası değişmiş")
		}
	}
	return migrations, nil
}

func compareChecksums(m Migration, rec appliedRecord) error {
	if m.UpChecksum != rec.upChecksum {
		return fmt.Errorf("up dosyası uygulandıktan sonra değişmiş")
	}
	if m.HasDownFile && rec.downChecksum.Valid && m.DownChecksum != rec.downChecksum.String {
		return fmt.Errorf("down dosyası uygulandıktan sonra değişmiş")
	}
	return nil
}

// Status dosya ve veritabanı durumunu özetler
func (r *Runner) Status(ctx context.Context) (*Status, error) {
	migrations, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{Migrations: migrations, TotalCount: len(migrations), Health: HealthOK}
	for _, m := range migrations {
		if !m.Applied {
			status.PendingCount++
			continue
		}
		status.AppliedCount++
		if m.Version > status.CurrentVersion {
			status.CurrentVersion = m.Version
		}
		if status.LastAppliedAt == nil || m.AppliedAt.After(*status.LastAppliedAt) {
			status.LastAppliedAt = m.AppliedAt
		}
		if m.Dirty {
			status.DirtyCount++
		}
	}

	switch {
	case status.DirtyCount > 0:
		status.Health = HealthDirty
	case status.PendingCount > 0:
		status.Health = HealthPending
	}
	return status, nil
}

func (r *Runner) recordInTx(ctx context.Context, tx *sql.Tx, m Migration, elapsed time.Duration) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (version, name, up_checksum, down_checksum, execution_time_ms, applied_by)
		VALUES ($1, $2, $3, $4, $5, $6)`, r.config.TableName)

	down := sql.NullString{String: m.DownChecksum, Valid: m.HasDownFile}
	_, err := tx.ExecContext(ctx, query, m.Version, m.Name, m.UpChecksum, down, elapsed.Milliseconds(), r.config.AppliedBy)
	return err
}

func (r *Runner) deleteInTx(ctx context.Context, tx *sql.Tx, version int64) error {
	res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE version = $1`, r.config.TableName), version)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("migration kaydı bulunamadı: %d", version)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// AuditRepository admin işlem kayıtları
type AuditRepository struct {
	db db.DBTX
}

// NewAuditRepository yeni repository oluşturur
func NewAuditRepository(database db.DBTX) *AuditRepository {
	return &AuditRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *AuditRepository) WithTx(tx *sql.Tx) *AuditRepository {
	return &AuditRepository{db: tx}
}

// Create audit kaydı ekler
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (entity_type, entity_id, action, user_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.EntityType, entry.EntityID, entry.Action, entry.UserID, entry.Details, entry.IPAddress, entry.UserAgent)
	if err != nil {
		return fmt.Errorf("audit kaydı oluşturulamadı: %w", err)
	}
	return nil
}

// List audit kayıtları, entityType boşsa hepsi
func (r *AuditRepository) List(ctx context.Context, entityType string, limit, offset int) ([]*models.AuditLog, int, error) {
	limit, offset = NormalizePage(limit, offset)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE ($1 = '' OR entity_type = $1)`, entityType).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("audit sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, user_id, details, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE ($1 = '' OR entity_type = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, entityType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("audit kayıtları listelenemedi: %w", err)
	}
	defer rows.Close()

	logs := []*models.AuditLog{}
	for rows.Next() {
		a := &models.AuditLog{}
		if err := rows.Scan(&a.ID, &a.EntityType, &a.EntityID, &a.Action, &a.UserID,
			&a.Details, &a.IPAddress, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("audit scan hatası: %w", err)
		}
		logs = append(logs, a)
	}
	return logs, total, rows.Err()
}

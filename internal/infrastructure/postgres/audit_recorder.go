package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/pkg/logger"
)

var _ audit.Recorder = (*AuditRecorder)(nil)

// AuditRecorder escribe el log de auditoría en PostgreSQL, best-effort.
// Record nunca devuelve error: se llama después del commit de la operación
// principal y un fallo aquí solo se registra en el log estructurado.
type AuditRecorder struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewAuditRecorder construye el recorder de auditoría.
func NewAuditRecorder(pool *pgxpool.Pool, log *logger.Logger) *AuditRecorder {
	return &AuditRecorder{pool: pool, log: log}
}

// Record agrega una entrada al log de auditoría.
func (r *AuditRecorder) Record(ctx context.Context, actorID, action, details string) {
	entry := entity.AuditEntry{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	var actor *string
	if entry.ActorID != "" {
		actor = &entry.ActorID
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, actor_id, action, details, created_at) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, actor, entry.Action, entry.Details, entry.CreatedAt,
	)
	if err != nil {
		r.log.Warn().Err(err).
			Str("actor", entry.ActorID).
			Str("action", entry.Action).
			Msg("no se pudo registrar auditoría")
	}
}

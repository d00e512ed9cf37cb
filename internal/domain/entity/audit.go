package entity

import "time"

// AuditEntry entrada del log de auditoría. Se escribe best-effort después
// de que la operación principal haya hecho commit; nunca dentro de ella.
type AuditEntry struct {
	ID        string
	ActorID   string
	Action    string
	Details   string
	CreatedAt time.Time
}

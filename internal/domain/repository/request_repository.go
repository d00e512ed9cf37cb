package repository

import (
	"time"

	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
)

// RequestRow fila de listado de pedidos con nombres resueltos por join.
type RequestRow struct {
	ID              string
	Kind            string
	Status          string
	Quantity        int64
	Justification   string
	RejectionReason *string
	ItemName        string
	RequesterName   string
	ObraName        *string
	CreatedAt       time.Time
	DecidedAt       *time.Time
}

// RequestRepository define el puerto de persistencia para pedidos.
// Los campos de decisión solo se escriben vía Decide, desde el workflow.
type RequestRepository interface {
	Create(request *entity.Request) error
	GetByID(id string) (*entity.Request, error)
	// GetForUpdate obtiene el pedido bloqueando la fila; devuelve el
	// pedido aunque ya esté decidido, para que el caller distinga
	// AlreadyDecided de NotFound.
	GetForUpdate(id string) (*entity.Request, error)
	// Decide escribe estado terminal, aprobador, fecha de decisión y, para
	// rechazos, el motivo. Falla si el pedido no sigue pendiente.
	Decide(id, status, approverID string, decidedAt time.Time, rejectionReason *string) error
	// ListPending pedidos pendientes, más antiguos primero (orden de atención).
	ListPending() ([]RequestRow, error)
	// ListByRequester historial de pedidos de un solicitante, más recientes primero.
	ListByRequester(requesterID string) ([]RequestRow, error)
}

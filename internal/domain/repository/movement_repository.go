package repository

import (
	"time"

	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
)

// ConsumptionRow fila de la vista de consumo por obra (movimiento + nombres).
// La produce la DB; el use case la agrega en totales.
type ConsumptionRow struct {
	MovementID string
	ItemName   string
	Quantity   int64
	ActorName  string
	Note       string
	Date       time.Time
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Los movimientos son append-only: no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
	// ListConsumptionByObra lista salidas con destino a la obra, más recientes primero.
	ListConsumptionByObra(obraID string) ([]ConsumptionRow, error)
}

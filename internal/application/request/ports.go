package request

import (
	"context"

	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del workflow atados a esa tx. La decisión de un pedido y su
// movimiento de stock comparten esta única transacción: o ambos quedan
// escritos o ninguno.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
	) error) error
}

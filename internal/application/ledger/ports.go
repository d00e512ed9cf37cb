package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad de cada movimiento:
// lectura de saldo, escritura del nuevo saldo e inserción del registro
// suceden todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

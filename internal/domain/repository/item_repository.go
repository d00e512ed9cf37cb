package repository

import "github.com/tu-usuario/almacen-obras/internal/domain/entity"

// ItemRepository define el puerto de persistencia para ítems del catálogo.
// Quantity solo se escribe vía UpdateQuantity, y únicamente desde el motor
// de movimientos dentro de una transacción.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	// Update actualiza nombre, descripción y precio. Nunca la cantidad.
	Update(item *entity.Item) error
	// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	// UpdateQuantity escribe el nuevo saldo. Solo el motor de movimientos.
	UpdateQuantity(id string, quantity int64) error
	List() ([]*entity.Item, error)
	// ListLowStock lista ítems con cantidad igual o menor al umbral, ascendente.
	ListLowStock(threshold int64) ([]*entity.Item, error)
}

// DescriptionRepository puerto para el catálogo de descripciones.
type DescriptionRepository interface {
	Create(desc *entity.Description) error
	GetByID(id string) (*entity.Description, error)
	List() ([]*entity.Description, error)
	// Delete falla con ErrConflict si la descripción está en uso por algún ítem.
	Delete(id string) error
}

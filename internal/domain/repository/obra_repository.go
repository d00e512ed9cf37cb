package repository

import "github.com/tu-usuario/almacen-obras/internal/domain/entity"

// ObraRepository define el puerto de persistencia para obras.
type ObraRepository interface {
	Create(obra *entity.Obra) error
	GetByID(id string) (*entity.Obra, error)
	Update(obra *entity.Obra) error
	List() ([]*entity.Obra, error)
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyDecided    = errors.New("pedido ya decidido")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrStoreUnavailable  = errors.New("almacenamiento no disponible")
)

// InsufficientStockError indica que una salida dejaría el stock en negativo.
// Lleva disponible y solicitado para que el caller arme un mensaje preciso
// sin volver a consultar el estado.
type InsufficientStockError struct {
	ItemName  string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el ítem '%s': disponible %d, solicitado %d",
		e.ItemName, e.Available, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// DuplicateNameError indica violación de unicidad de nombre en creación/renombrado.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("el nombre '%s' ya está en uso", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicate
}

// AlreadyDecidedError indica aprobar/rechazar sobre un pedido que ya no está pendiente.
type AlreadyDecidedError struct {
	RequestID string
	Status    string
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("el pedido %s ya fue decidido (estado actual: %s)", e.RequestID, e.Status)
}

func (e *AlreadyDecidedError) Is(target error) bool {
	return target == ErrAlreadyDecided
}

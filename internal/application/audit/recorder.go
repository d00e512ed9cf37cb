package audit

import "context"

// Códigos de acción para el log de auditoría.
const (
	ActionCreateItem     = "CREAR_ITEM"
	ActionUpdateItem     = "ACTUALIZAR_ITEM"
	ActionMovement       = "REGISTRAR_MOVIMIENTO"
	ActionCreateRequest  = "CREAR_PEDIDO"
	ActionApproveRequest = "APROBAR_PEDIDO"
	ActionRejectRequest  = "RECHAZAR_PEDIDO"
	ActionCreateObra     = "CREAR_OBRA"
	ActionUpdateObra     = "ACTUALIZAR_OBRA"
	ActionCreateUser     = "CREAR_USUARIO"
	ActionUpdateUser     = "ACTUALIZAR_USUARIO"
	ActionDeleteUser     = "ELIMINAR_USUARIO"
	ActionLogin          = "LOGIN"
)

// Recorder es el colaborador de auditoría. Record es fire-and-forget:
// se invoca después del commit de la operación principal y un fallo de
// auditoría jamás revierte ni falla esa operación.
type Recorder interface {
	Record(ctx context.Context, actorID, action, details string)
}

// Noop implementación vacía para tests y wiring parcial.
type Noop struct{}

func (Noop) Record(context.Context, string, string, string) {}

package entity

import "time"

// Roles de usuario. El core nunca consulta roles: la autorización
// ocurre una sola vez en el borde HTTP (RequireRole).
const (
	RoleAdministracion = "administracion"
	RoleIngeniero      = "ingeniero"
	RoleEncargado      = "encargado"
	RoleComercial      = "comercial"
)

// ValidRole verifica que el rol sea uno de los perfiles soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministracion, RoleIngeniero, RoleEncargado, RoleComercial:
		return true
	}
	return false
}

// User usuario del sistema (identidad actuante para movimientos y pedidos).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

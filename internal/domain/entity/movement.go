package entity

import "time"

// Tipos de movimiento de almacén.
const (
	MovementTypeReceipt     = "RECEIPT"     // entrada de material
	MovementTypeConsumption = "CONSUMPTION" // salida hacia obra
	MovementTypePurchase    = "PURCHASE"    // compra que ingresa stock
)

// ValidMovementType verifica que el tipo sea uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeReceipt, MovementTypeConsumption, MovementTypePurchase:
		return true
	}
	return false
}

// Movement es un registro inmutable del libro de movimientos (append-only).
// Quantity es siempre la magnitud positiva; el signo lo decide Type.
// RequestID enlaza el movimiento con el pedido aprobado que lo originó.
// ObraID enlaza una salida con la obra que consume el material (columna
// explícita, no convención en el texto de la nota).
type Movement struct {
	ID        string
	ItemID    string
	Type      string
	Quantity  int64
	ActorID   string
	Note      string
	RequestID *string
	ObraID    *string
	CreatedAt time.Time
}

package dto

import "time"

// ApplyMovementRequest body para POST /api/movements.
// Type: RECEIPT, CONSUMPTION o PURCHASE. Quantity es magnitud positiva.
type ApplyMovementRequest struct {
	ItemID   string  `json:"item_id"`
	Type     string  `json:"type"`
	Quantity int64   `json:"quantity"`
	Note     string  `json:"note,omitempty"`
	ObraID   *string `json:"obra_id,omitempty"`
}

// ApplyMovementResponse devuelve el nuevo saldo tras registrar el movimiento.
type ApplyMovementResponse struct {
	NewQuantity int64 `json:"new_quantity"`
}

// MovementResponse fila del historial de movimientos de un ítem.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	ActorID   string    `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
	RequestID *string   `json:"request_id,omitempty"`
	ObraID    *string   `json:"obra_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

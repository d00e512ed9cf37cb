package dto

import "time"

// CreateObraRequest body para POST /api/obras.
type CreateObraRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// UpdateObraRequest body para PUT /api/obras/:id. Campos nil no se tocan.
type UpdateObraRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ObraResponse representación de una obra.
type ObraResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ConsumptionMovementDTO movimiento de consumo dentro de la vista por obra.
type ConsumptionMovementDTO struct {
	MovementID string    `json:"movement_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int64     `json:"quantity"`
	ActorName  string    `json:"actor_name"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `json:"date"`
}

// ConsumptionResponse vista de materiales consumidos por una obra, con totales
// derivados de las mismas filas listadas.
type ConsumptionResponse struct {
	Obra          ObraResponse             `json:"obra"`
	Movements     []ConsumptionMovementDTO `json:"movements"`
	ItemCount     int                      `json:"item_count"`
	TotalQuantity int64                    `json:"total_quantity"`
}

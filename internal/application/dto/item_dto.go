package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /api/items.
// OpeningQuantity > 0 se registra como movimiento de entrada, nunca como
// escritura directa del saldo.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	DescriptionID   *string         `json:"description_id,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	OpeningQuantity int64           `json:"opening_quantity,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Campos nil no se tocan.
// La cantidad no es actualizable por esta vía.
type UpdateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	DescriptionID *string          `json:"description_id,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
}

// ItemResponse representación de un ítem en respuestas.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// CreateDescriptionRequest body para POST /api/descriptions.
type CreateDescriptionRequest struct {
	Name string `json:"name"`
}

// DescriptionResponse representación de una descripción del catálogo.
type DescriptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

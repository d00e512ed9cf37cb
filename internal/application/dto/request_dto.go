package dto

import "time"

// SubmitRequestRequest body para POST /api/requests.
// Kind: PURCHASE o WITHDRAWAL. ObraID solo aplica a salidas con destino a obra.
type SubmitRequestRequest struct {
	Kind          string  `json:"kind"`
	ItemID        string  `json:"item_id"`
	Quantity      int64   `json:"quantity"`
	Justification string  `json:"justification"`
	ObraID        *string `json:"obra_id,omitempty"`
}

// SubmitRequestResponse identificador del pedido creado.
type SubmitRequestResponse struct {
	RequestID string `json:"request_id"`
}

// RejectRequestRequest body para POST /api/requests/:id/reject. Reason es obligatorio.
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

// RequestResponse fila de listado de pedidos.
type RequestResponse struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	Quantity        int64      `json:"quantity"`
	Justification   string     `json:"justification"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ItemName        string     `json:"item_name"`
	RequesterName   string     `json:"requester_name"`
	ObraName        string     `json:"obra_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

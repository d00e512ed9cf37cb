package entity

import "time"

// Tipos de pedido.
const (
	RequestKindPurchase   = "PURCHASE"   // compra de material
	RequestKindWithdrawal = "WITHDRAWAL" // salida de material hacia obra
)

// Estados del ciclo de vida de un pedido.
// PENDING es el estado inicial; APPROVED y REJECTED son terminales.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// Request representa un pedido de compra o de salida pendiente de decisión.
// Los campos de decisión (ApproverID, DecidedAt, RejectionReason) son nulos
// hasta que el pedido se aprueba o rechaza, y solo los escribe el workflow.
type Request struct {
	ID              string
	ItemID          string
	Kind            string
	Quantity        int64
	Status          string
	RequesterID     string
	Justification   string
	ObraID          *string // solo pedidos de salida con destino a obra
	ApproverID      *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
}

// Decided indica si el pedido ya alcanzó un estado terminal.
func (r *Request) Decided() bool {
	return r.Status != RequestStatusPending
}

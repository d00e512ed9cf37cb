package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem del catálogo de almacén.
// Quantity es un cache derivado: su valor autoritativo es la suma de todos los
// movimientos del ítem. Solo el motor de movimientos puede escribirlo.
type Item struct {
	ID            string
	Name          string
	DescriptionID *string
	UnitPrice     decimal.Decimal
	Quantity      int64 // nunca negativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Description entrada del catálogo de descripciones (familias de material).
type Description struct {
	ID   string
	Name string
}

package entity

import "time"

// Obra representa un destino de consumo de material (frente de obra).
type Obra struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}

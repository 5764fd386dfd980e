package entity

import "time"

// Product representa un producto del catálogo.
// ID lo asigna la base de datos al insertar (BIGSERIAL) y es inmutable.
// Quantity nunca puede quedar negativo; UpdatedAt lo fija el caso de uso antes de cada escritura.
type Product struct {
	ID          int64
	SKU         string // código único global
	Name        string
	Description *string // opcional, NULL en BD
	PriceCents  int64   // valor monetario en centavos
	Quantity    int
	UpdatedAt   time.Time
}

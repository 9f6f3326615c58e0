package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TintoreriaItem es un artículo del catálogo de tintorería con precio propio
// (distinto del valet, que tiene precio plano).
type TintoreriaItem struct {
	ID        string
	Nombre    string
	Precio    decimal.Decimal
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto del local.
const (
	GastoInsumos      = "insumos"
	GastoServicios    = "servicios"
	GastoSueldos      = "sueldos"
	GastoMantenimiento = "mantenimiento"
	GastoOtros        = "otros"
)

// Gasto representa un gasto operativo registrado por el operador.
type Gasto struct {
	ID        string
	Concepto  string
	Categoria string
	Monto     decimal.Decimal
	Fecha     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

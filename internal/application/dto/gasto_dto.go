package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGastoRequest alta de un gasto operativo.
type CreateGastoRequest struct {
	Concepto  string          `json:"concepto" validate:"required,min=1,max=200"`
	Categoria string          `json:"categoria" validate:"required,oneof=insumos servicios sueldos mantenimiento otros"`
	Monto     decimal.Decimal `json:"monto" validate:"required"`
	Fecha     *time.Time      `json:"fecha"` // nil = hoy
}

// UpdateGastoRequest edición de un gasto.
type UpdateGastoRequest struct {
	Concepto  string           `json:"concepto" validate:"omitempty,min=1,max=200"`
	Categoria string           `json:"categoria" validate:"omitempty,oneof=insumos servicios sueldos mantenimiento otros"`
	Monto     *decimal.Decimal `json:"monto"`
}

// GastoResponse salida de un gasto.
type GastoResponse struct {
	ID        string          `json:"id"`
	Concepto  string          `json:"concepto"`
	Categoria string          `json:"categoria"`
	Monto     decimal.Decimal `json:"monto"`
	Fecha     time.Time       `json:"fecha"`
}

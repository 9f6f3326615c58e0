package dto

import "github.com/shopspring/decimal"

// CreateInventarioRequest alta de un insumo.
type CreateInventarioRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=1,max=200"`
	Stock       int             `json:"stock" validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdateInventarioRequest edición de un insumo.
type UpdateInventarioRequest struct {
	Nombre      string `json:"nombre" validate:"omitempty,min=1,max=200"`
	StockMinimo *int   `json:"stock_minimo" validate:"omitempty,min=0"`
}

// AjusteStockRequest entrada/salida de stock. Cantidad positiva = entrada
// (con costo unitario opcional para recalcular el costo promedio),
// negativa = consumo.
type AjusteStockRequest struct {
	Cantidad int              `json:"cantidad" validate:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// InventarioResponse salida de un insumo.
type InventarioResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	BajoStock   bool            `json:"bajo_stock"`
}

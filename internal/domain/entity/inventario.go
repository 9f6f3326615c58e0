package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventarioItem representa un insumo del local (jabón, perfume, bolsas).
// Stock con umbral de reposición para el aviso de bajo stock.
type InventarioItem struct {
	ID         string
	Nombre     string
	Stock      int
	StockMinimo int // por debajo de este umbral el item aparece como "bajo stock"
	UnitCost   decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BajoStock indica si el stock actual está en o por debajo del umbral.
func (i *InventarioItem) BajoStock() bool {
	return i.Stock <= i.StockMinimo
}

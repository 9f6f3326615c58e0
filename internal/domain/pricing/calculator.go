// Package pricing implementa el cálculo del total de un ticket (servicio de dominio).
// Es puro y determinista: el caller lo reinvoca cada vez que cambia la selección.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Catalog provee los precios autoritativos: el precio plano del valet y el
// precio unitario por artículo de tintorería. Un id desconocido se cotiza en
// cero (default silencioso, no es un error).
type Catalog struct {
	PrecioValet decimal.Decimal
	Tintoreria  map[string]decimal.Decimal // itemID -> precio unitario
}

// PrecioItem devuelve el precio unitario del artículo, o cero si no existe.
func (c Catalog) PrecioItem(itemID string) decimal.Decimal {
	if p, ok := c.Tintoreria[itemID]; ok {
		return p
	}
	return decimal.Zero
}

// Seleccion es una línea elegida de tintorería (artículo + cantidad).
type Seleccion struct {
	ItemID   string
	Quantity int
}

// CalculateTotal calcula el total del ticket.
//
//   - servicio "valet" con valet gratis: 0 sin importar la cantidad.
//   - servicio "valet": PrecioValet × cantidad.
//   - servicio "tintoreria": Σ (precio unitario × cantidad) de la selección.
//
// Cantidades cero o negativas se cotizan en 0 (el caller valida cantidad >= 1
// antes de crear el ticket; acá sólo se garantiza un resultado consistente).
func CalculateTotal(servicio string, valetQty int, useFreeValet bool, selecciones []Seleccion, catalog Catalog) decimal.Decimal {
	switch servicio {
	case "valet":
		if useFreeValet {
			return decimal.Zero
		}
		if valetQty <= 0 {
			return decimal.Zero
		}
		return catalog.PrecioValet.Mul(decimal.NewFromInt(int64(valetQty)))
	case "tintoreria":
		total := decimal.Zero
		for _, sel := range selecciones {
			if sel.Quantity <= 0 {
				continue
			}
			precio := catalog.PrecioItem(sel.ItemID)
			total = total.Add(precio.Mul(decimal.NewFromInt(int64(sel.Quantity))))
		}
		return total
	}
	return decimal.Zero
}

package pricing_test

import (
	"testing"

	"github.com/puntolimpio/lavanderia-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestCatalog catálogo con precio de valet 5000 y tres artículos de tintorería.
func buildTestCatalog() pricing.Catalog {
	return pricing.Catalog{
		PrecioValet: decimal.NewFromInt(5000),
		Tintoreria: map[string]decimal.Decimal{
			"camisa":  decimal.NewFromInt(1500),
			"traje":   decimal.NewFromInt(8000),
			"acolchado": decimal.NewFromInt(12000),
		},
	}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// Valet
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTotal_ValetPorCantidad(t *testing.T) {
	total := pricing.CalculateTotal("valet", 3, false, nil, buildTestCatalog())
	assert.True(t, dec(15000).Equal(total),
		"3 valets a 5000 deben costar 15000, se obtuvo %s", total)
}

func TestCalculateTotal_ValetUnitario(t *testing.T) {
	total := pricing.CalculateTotal("valet", 1, false, nil, buildTestCatalog())
	assert.True(t, dec(5000).Equal(total), "1 valet debe costar el precio base")
}

func TestCalculateTotal_ValetGratisEsCero(t *testing.T) {
	// El valet gratis no cobra, sin importar la cantidad pedida.
	total := pricing.CalculateTotal("valet", 4, true, nil, buildTestCatalog())
	assert.True(t, total.IsZero(), "el valet gratis siempre cotiza 0, se obtuvo %s", total)
}

func TestCalculateTotal_ValetCantidadCeroONegativa(t *testing.T) {
	assert.True(t, pricing.CalculateTotal("valet", 0, false, nil, buildTestCatalog()).IsZero(),
		"cantidad 0 cotiza 0")
	assert.True(t, pricing.CalculateTotal("valet", -2, false, nil, buildTestCatalog()).IsZero(),
		"cantidad negativa cotiza 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tintorería
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTotal_TintoreriaSumaLineas(t *testing.T) {
	sel := []pricing.Seleccion{
		{ItemID: "camisa", Quantity: 2}, // 3000
		{ItemID: "traje", Quantity: 1},  // 8000
	}
	total := pricing.CalculateTotal("tintoreria", 0, false, sel, buildTestCatalog())
	assert.True(t, dec(11000).Equal(total), "2 camisas + 1 traje = 11000, se obtuvo %s", total)
}

func TestCalculateTotal_TintoreriaItemDesconocidoCotizaCero(t *testing.T) {
	sel := []pricing.Seleccion{
		{ItemID: "camisa", Quantity: 1},
		{ItemID: "no-existe", Quantity: 5}, // id desconocido: 0, no error
	}
	total := pricing.CalculateTotal("tintoreria", 0, false, sel, buildTestCatalog())
	assert.True(t, dec(1500).Equal(total),
		"un artículo fuera de catálogo se cotiza en 0 sin afectar el resto")
}

func TestCalculateTotal_TintoreriaCantidadNoPositivaSeIgnora(t *testing.T) {
	sel := []pricing.Seleccion{
		{ItemID: "camisa", Quantity: 0},
		{ItemID: "traje", Quantity: -1},
		{ItemID: "acolchado", Quantity: 1},
	}
	total := pricing.CalculateTotal("tintoreria", 0, false, sel, buildTestCatalog())
	assert.True(t, dec(12000).Equal(total),
		"líneas con cantidad <= 0 no suman, se obtuvo %s", total)
}

func TestCalculateTotal_TintoreriaSinSeleccion(t *testing.T) {
	total := pricing.CalculateTotal("tintoreria", 0, false, nil, buildTestCatalog())
	assert.True(t, total.IsZero(), "sin selección el total es 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bordes
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTotal_ServicioDesconocido(t *testing.T) {
	total := pricing.CalculateTotal("planchado", 3, false, nil, buildTestCatalog())
	assert.True(t, total.IsZero(), "un servicio desconocido cotiza 0")
}

func TestCalculateTotal_Determinista(t *testing.T) {
	sel := []pricing.Seleccion{{ItemID: "traje", Quantity: 2}}
	t1 := pricing.CalculateTotal("tintoreria", 0, false, sel, buildTestCatalog())
	t2 := pricing.CalculateTotal("tintoreria", 0, false, sel, buildTestCatalog())
	assert.True(t, t1.Equal(t2), "el mismo input siempre produce el mismo total")
}

package normalize_test

import (
	"testing"

	"github.com/puntolimpio/lavanderia-api/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func TestSearch_QuitaTildesYMayusculas(t *testing.T) {
	casos := map[string]string{
		"Martínez":      "martinez",
		"  José PÉREZ ": "jose perez",
		"Ñandú":         "ñandu", // la ñ no es marca diacrítica y se conserva
		"camión":        "camion",
		"":              "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, normalize.Search(entrada), "entrada %q", entrada)
	}
}

func TestSearch_MismasClavesParaVariantes(t *testing.T) {
	assert.Equal(t, normalize.Search("Martínez"), normalize.Search("MARTINEZ"),
		"con y sin tilde deben producir la misma clave de búsqueda")
}

func TestPhone_SoloDigitos(t *testing.T) {
	casos := map[string]string{
		"11-5555-0000":    "1155550000",
		"(011) 5555 0000": "01155550000",
		"+54 9 11 5555":   "+549115555",
		"11.5555.0000":    "1155550000",
		"sin numeros":     "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, normalize.Phone(entrada), "entrada %q", entrada)
	}
}

func TestPhone_MasNoInicialSeDescarta(t *testing.T) {
	assert.Equal(t, "1155", normalize.Phone("11+55"),
		"el '+' sólo vale como primer carácter")
}

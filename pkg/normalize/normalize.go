package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var removeDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Search normaliza un texto para búsqueda: minúsculas y sin tildes.
// "Martínez" y "martinez" producen la misma clave.
func Search(s string) string {
	out, _, err := transform.String(removeDiacritics, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Phone deja solo dígitos y un '+' inicial opcional. Los teléfonos se usan como
// clave de búsqueda de clientes, así que "11-2345-6789" y "1123456789" deben coincidir.
func Phone(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

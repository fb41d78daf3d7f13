// Package textnorm normaliza texto para búsquedas y comparaciones sin acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas, quita acentos y colapsa espacios: "  Feijão  Preto" -> "feijao preto".
func Fold(s string) string {
	// Los transformers no son seguros para uso concurrente: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Contains informa si needle aparece en haystack ignorando mayúsculas y acentos.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Equal compara ignorando mayúsculas, acentos y espacios extra.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// SearchText concatena y normaliza los campos buscables de un registro.
func SearchText(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = Fold(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

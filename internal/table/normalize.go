package table

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeColumnName trims a header and collapses internal whitespace runs to
// one space. Names are composed to NFC first so visually equal headers compare
// equal. Normalizing twice yields the same name.
func NormalizeColumnName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// NormalizeColumnNames normalizes every name, keeping order
func NormalizeColumnNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = NormalizeColumnName(name)
	}
	return out
}

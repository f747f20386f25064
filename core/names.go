package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey normalizes a record name for case-insensitive comparison.
// Surrounding whitespace is ignored and letters are case-folded, so
// "Crème Brûlée " and "CRÈME BRÛLÉE" share a key.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

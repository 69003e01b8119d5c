// Package ingredient classifies recognized label text against a fixed lexicon
// of animal-derived ingredient names.
package ingredient

import (
	"sort"
	"strings"
)

// animalIngredients is the lexicon of known animal-derived ingredient names.
// Entries are lowercase and trimmed. It is built once and only read afterwards,
// so it is safe to share across goroutines without locking.
var animalIngredients = map[string]struct{}{ //nolint: gochecknoglobals
	"gelatin":   {},
	"casein":    {},
	"albumin":   {},
	"whey":      {},
	"lactose":   {},
	"honey":     {},
	"cochineal": {},
	"shellac":   {},
	"collagen":  {},
	"lard":      {},
	"tallow":    {},
	"fish oil":  {},
	"anchovy":   {},
	"beef":      {},
	"pork":      {},
	"chicken":   {},
	"meat":      {},
	"egg":       {},
	"milk":      {},
	"butter":    {},
	"cream":     {},
}

// Normalize returns the form of a fragment used for lexicon lookups:
// leading and trailing whitespace removed, then lower-cased.
func Normalize(fragment string) string {
	return strings.ToLower(strings.TrimSpace(fragment))
}

// IsAnimalDerived reports whether the normalized fragment exactly equals a
// lexicon entry. Substrings do not match, so "Beef Gelatin" is not animal
// derived as a single fragment.
func IsAnimalDerived(fragment string) bool {
	_, ok := animalIngredients[Normalize(fragment)]

	return ok
}

// Lexicon returns a sorted copy of the lexicon entries.
func Lexicon() []string {
	out := make([]string, 0, len(animalIngredients))
	for term := range animalIngredients {
		out = append(out, term)
	}
	sort.Strings(out)

	return out
}

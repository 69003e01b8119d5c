package ingredient

import "veggieplan/pkg/domain"

// Classify evaluates every fragment in order and returns the resulting
// analysis. A fragment is flagged when its normalized form exactly matches a
// lexicon entry; the flagged value keeps the fragment's original text.
//
// Classify is a pure function: it never fails and never retains the input.
func Classify(fragments []string) *domain.IngredientAnalysis {
	matches := make([]string, 0)
	vegan := true

	for _, fragment := range fragments {
		if IsAnimalDerived(fragment) {
			matches = append(matches, fragment)
			vegan = false
		}
	}

	detected := make([]string, len(fragments))
	copy(detected, fragments)

	return &domain.IngredientAnalysis{
		IsVegan:           vegan,
		AnimalIngredients: matches,
		DetectedText:      detected,
	}
}

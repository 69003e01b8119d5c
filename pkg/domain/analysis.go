package domain

// IngredientAnalysis is the outcome of classifying the text recognized on a
// food label. It is built once per request and never mutated afterwards.
type IngredientAnalysis struct {
	// IsVegan is true iff AnimalIngredients is empty.
	IsVegan bool `json:"is_vegan"`
	// AnimalIngredients lists the detected fragments that matched a known
	// animal-derived ingredient, in input order and with original casing.
	AnimalIngredients []string `json:"animal_ingredients"`
	// DetectedText lists every fragment as received from the text source.
	DetectedText []string `json:"detected_text"`
}

// Package static provides a textsource.Recognizer that ignores its input and
// returns a fixed ingredient list. It stands in for a real OCR engine.
package static

import (
	"context"
	"veggieplan/pkg/textsource"
)

// fragments is the canned recognition output.
var fragments = []string{ //nolint: gochecknoglobals
	"Ingredients:",
	"Wheat Flour",
	"Sugar",
	"Vegetable Oil",
	"Salt",
	"Gelatin",
	"Natural Flavors",
}

// Recognizer always recognizes the same fragments. It never fails.
type Recognizer struct{}

// Ensure Recognizer conforms to the textsource.Recognizer interface at compile time.
var _ textsource.Recognizer = Recognizer{}

// New returns a static Recognizer.
func New() Recognizer {
	return Recognizer{}
}

// Recognize returns a fresh copy of the canned fragments regardless of image.
func (Recognizer) Recognize(_ context.Context, _ []byte) ([]string, error) {
	out := make([]string, len(fragments))
	copy(out, fragments)

	return out, nil
}

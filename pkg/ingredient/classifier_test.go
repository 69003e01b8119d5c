package ingredient_test

import (
	"strings"
	"testing"

	"veggieplan/pkg/ingredient"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		in        []string
		vegan     bool
		animal    []string
		detectLen int
	}{
		{
			name:      "single gelatin among plant ingredients",
			in:        []string{"Wheat Flour", "Sugar", "Gelatin", "Salt"},
			vegan:     false,
			animal:    []string{"Gelatin"},
			detectLen: 4,
		},
		{
			name:      "empty input",
			in:        []string{},
			vegan:     true,
			animal:    []string{},
			detectLen: 0,
		},
		{
			name:      "nil input",
			in:        nil,
			vegan:     true,
			animal:    []string{},
			detectLen: 0,
		},
		{
			name:      "original casing and whitespace preserved",
			in:        []string{"HONEY", "  Whey  "},
			vegan:     false,
			animal:    []string{"HONEY", "  Whey  "},
			detectLen: 2,
		},
		{
			name:      "trimmed and case-insensitive",
			in:        []string{" Gelatin "},
			vegan:     false,
			animal:    []string{" Gelatin "},
			detectLen: 1,
		},
		{
			name:      "exact match only",
			in:        []string{"Beef Gelatin", "gelatine", "eggs"},
			vegan:     true,
			animal:    []string{},
			detectLen: 3,
		},
		{
			name:      "multi-word lexicon entry",
			in:        []string{"Fish Oil", "Rice"},
			vegan:     false,
			animal:    []string{"Fish Oil"},
			detectLen: 2,
		},
		{
			name:      "duplicates are kept in order",
			in:        []string{"milk", "Sugar", "MILK"},
			vegan:     false,
			animal:    []string{"milk", "MILK"},
			detectLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ingredient.Classify(tt.in)
			require.Equal(t, tt.vegan, res.IsVegan)
			require.Equal(t, tt.animal, res.AnimalIngredients)
			require.NotNil(t, res.DetectedText)
			require.Len(t, res.DetectedText, tt.detectLen)
			if len(tt.in) > 0 {
				require.Equal(t, tt.in, res.DetectedText)
			}
		})
	}
}

func TestClassify_DoesNotAliasInput(t *testing.T) {
	in := []string{"Sugar", "Lard"}
	res := ingredient.Classify(in)
	in[0] = "Tallow"

	require.Equal(t, []string{"Sugar", "Lard"}, res.DetectedText)
}

func TestIsAnimalDerived(t *testing.T) {
	require.True(t, ingredient.IsAnimalDerived("gelatin"))
	require.True(t, ingredient.IsAnimalDerived("\tCochineal\n"))
	require.False(t, ingredient.IsAnimalDerived("Beef Gelatin"))
	require.False(t, ingredient.IsAnimalDerived(""))
}

func TestLexicon(t *testing.T) {
	terms := ingredient.Lexicon()
	require.Len(t, terms, 21)
	require.IsIncreasing(t, terms)
	for _, term := range terms {
		require.Equal(t, ingredient.Normalize(term), term, "lexicon entries must be normalized")
	}

	// returned slice is a copy
	terms[0] = "soy"
	require.False(t, ingredient.IsAnimalDerived("soy"))
}

// fragment draws either an arbitrary string or a lexicon term decorated with
// random casing and surrounding whitespace.
func fragment() *rapid.Generator[string] {
	lexicon := ingredient.Lexicon()

	decorated := rapid.Custom(func(t *rapid.T) string {
		term := rapid.SampledFrom(lexicon).Draw(t, "term")
		if rapid.Bool().Draw(t, "upper") {
			term = strings.ToUpper(term)
		}
		pad := rapid.SampledFrom([]string{"", " ", "  ", "\t"})

		return pad.Draw(t, "left") + term + pad.Draw(t, "right")
	})

	return rapid.OneOf(rapid.String(), decorated)
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}

	return i == len(sub)
}

func TestClassify_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(fragment()).Draw(t, "fragments")

		res := ingredient.Classify(in)

		if len(res.AnimalIngredients) > len(res.DetectedText) {
			t.Fatalf("more matches (%d) than fragments (%d)", len(res.AnimalIngredients), len(res.DetectedText))
		}
		if res.IsVegan != (len(res.AnimalIngredients) == 0) {
			t.Fatalf("is_vegan=%v with %d matches", res.IsVegan, len(res.AnimalIngredients))
		}
		if !isSubsequence(res.AnimalIngredients, res.DetectedText) {
			t.Fatalf("matches %q are not a subsequence of %q", res.AnimalIngredients, res.DetectedText)
		}
		for _, m := range res.AnimalIngredients {
			if !ingredient.IsAnimalDerived(m) {
				t.Fatalf("flagged fragment %q is not in the lexicon", m)
			}
		}

		again := ingredient.Classify(in)
		require.Equal(t, res, again)
	})
}

package llm

import (
	"context"
	"fmt"
	"strings"
)

// templateSynthesizer is the offline fallback used when no Gemini API key is
// configured. Its output is a fixed set of template recipes and must stay
// byte-for-byte deterministic for identical ingredient/restriction input.
type templateSynthesizer struct{}

// NewTemplateSynthesizer returns the deterministic offline Synthesizer.
func NewTemplateSynthesizer() Synthesizer {
	return &templateSynthesizer{}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t *templateSynthesizer) Synthesize(_ context.Context, ingredients, restrictions []string) ([]RecipeDraft, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients provided")
	}

	lead := ingredients[0]
	suffix := ""
	if len(restrictions) > 0 {
		suffix = " (" + strings.Join(restrictions, ", ") + ")"
	}

	draftIngredients := make([]IngredientDraft, 0, len(ingredients))
	for _, name := range ingredients {
		draftIngredients = append(draftIngredients, IngredientDraft{Name: name, Amount: "1", Unit: "portion"})
	}

	five := 5
	twenty := 20

	return []RecipeDraft{
		{
			Title:       fmt.Sprintf("Hearty %s Skillet%s", titleCase(lead), suffix),
			Description: fmt.Sprintf("A one-pan skillet built around %s.", strings.Join(ingredients, ", ")),
			Ingredients: draftIngredients,
			Instructions: []InstructionDraft{
				{Step: 1, Text: "Prep and chop all ingredients.", Duration: &five},
				{Step: 2, Text: fmt.Sprintf("Saute the %s over medium heat.", lead), Duration: &twenty},
				{Step: 3, Text: "Combine everything, season, and serve."},
			},
			CookTime:   25,
			Servings:   4,
			Difficulty: "easy",
			Rating:     4.0,
		},
		{
			Title:       fmt.Sprintf("Roasted %s Bowl%s", titleCase(lead), suffix),
			Description: fmt.Sprintf("An oven-roasted bowl featuring %s.", lead),
			Ingredients: draftIngredients,
			Instructions: []InstructionDraft{
				{Step: 1, Text: "Preheat the oven to 200C.", Duration: &five},
				{Step: 2, Text: "Toss ingredients with oil and roast.", Duration: &twenty},
				{Step: 3, Text: "Assemble the bowl and serve warm."},
			},
			CookTime:   35,
			Servings:   2,
			Difficulty: "medium",
			Rating:     4.2,
		},
		{
			Title:       fmt.Sprintf("%s Soup%s", titleCase(lead), suffix),
			Description: fmt.Sprintf("A simple simmered soup using %s.", strings.Join(ingredients, " and ")),
			Ingredients: draftIngredients,
			Instructions: []InstructionDraft{
				{Step: 1, Text: "Bring a pot of water to a boil.", Duration: &five},
				{Step: 2, Text: "Add all ingredients and simmer.", Duration: &twenty},
				{Step: 3, Text: "Season to taste and serve."},
			},
			CookTime:   30,
			Servings:   4,
			Difficulty: "easy",
			Rating:     3.8,
		},
	}, nil
}

package llm

import "context"

// RecipeDraft is the provider-agnostic shape of one synthesized recipe before
// it is persisted.
type RecipeDraft struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Ingredients  []IngredientDraft  `json:"ingredients"`
	Instructions []InstructionDraft `json:"instructions"`
	CookTime     int                `json:"cook_time_minutes"`
	Servings     int                `json:"servings"`
	Difficulty   string             `json:"difficulty"`
	Rating       float64            `json:"rating"`
}

// IngredientDraft is one ingredient of a synthesized recipe.
type IngredientDraft struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// InstructionDraft is one numbered step of a synthesized recipe.
type InstructionDraft struct {
	Step     int    `json:"step"`
	Text     string `json:"text"`
	Duration *int   `json:"duration_minutes,omitempty"`
}

// Synthesizer turns an ordered ingredient list plus dietary restrictions into
// an ordered list of recipe drafts.
type Synthesizer interface {
	Synthesize(ctx context.Context, ingredients, restrictions []string) ([]RecipeDraft, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

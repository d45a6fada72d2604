package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiSynthesizer is a Synthesizer backed by the Google Gemini API.
type geminiSynthesizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSynthesizer creates a new Gemini-backed recipe synthesizer.
func NewGeminiSynthesizer(ctx context.Context, apiKey, modelName string) (Synthesizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	return &geminiSynthesizer{client: client, model: model}, nil
}

// Synthesize prompts the model for recipes and parses its JSON response.
func (g *geminiSynthesizer) Synthesize(ctx context.Context, ingredients, restrictions []string) ([]RecipeDraft, error) {
	prompt := buildRecipePrompt(ingredients, restrictions)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("generated content is not text")
	}

	drafts, err := parseRecipeJSON(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}
	return drafts, nil
}

// Close closes the underlying Gemini client.
func (g *geminiSynthesizer) Close() error {
	return g.client.Close()
}

func buildRecipePrompt(ingredients, restrictions []string) string {
	restrictionLine := "none"
	if len(restrictions) > 0 {
		restrictionLine = strings.Join(restrictions, ", ")
	}
	return fmt.Sprintf(`You are an expert chef. Create 3 recipes using only the available ingredients below, plus common pantry staples (salt, pepper, oil, water).

Available Ingredients: %s
Dietary Restrictions: %s

Return the result strictly as a JSON array with this structure:
[
  {
    "title": "Recipe Name",
    "description": "One sentence description",
    "ingredients": [{"name": "ingredient", "amount": "2", "unit": "cups"}],
    "instructions": [{"step": 1, "text": "Do this", "duration_minutes": 5}],
    "cook_time_minutes": 30,
    "servings": 4,
    "difficulty": "easy",
    "rating": 4.5
  }
]

Difficulty must be one of: easy, medium, hard.
Do not include any other text or formatting in your response.
`, strings.Join(ingredients, ", "), restrictionLine)
}

// parseRecipeJSON unmarshals the model output, tolerating a fenced code block
// around the JSON array.
func parseRecipeJSON(raw string) ([]RecipeDraft, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var drafts []RecipeDraft
	if err := json.Unmarshal([]byte(cleaned), &drafts); err != nil {
		return nil, fmt.Errorf("unmarshal recipes: %w. Response: %s", err, raw)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("empty recipe list in response")
	}
	return drafts, nil
}

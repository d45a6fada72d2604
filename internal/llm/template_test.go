package llm

import (
	"context"
	"reflect"
	"testing"
)

func TestTemplateSynthesizer(t *testing.T) {
	ctx := context.Background()
	synth := NewTemplateSynthesizer()

	t.Run("Deterministic", func(t *testing.T) {
		first, err := synth.Synthesize(ctx, []string{"tomato", "rice"}, []string{"vegan"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		second, err := synth.Synthesize(ctx, []string{"tomato", "rice"}, []string{"vegan"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("Expected identical output for identical input")
		}
	})

	t.Run("ThreeTemplates", func(t *testing.T) {
		drafts, err := synth.Synthesize(ctx, []string{"chicken"}, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(drafts) != 3 {
			t.Fatalf("Expected 3 drafts, got %d", len(drafts))
		}

		wantTitles := []string{"Hearty Chicken Skillet", "Roasted Chicken Bowl", "Chicken Soup"}
		for i, want := range wantTitles {
			if drafts[i].Title != want {
				t.Errorf("Expected title %q, got %q", want, drafts[i].Title)
			}
		}
		for _, d := range drafts {
			if len(d.Ingredients) != 1 {
				t.Errorf("Expected every ingredient carried over, got %d", len(d.Ingredients))
			}
			if len(d.Instructions) == 0 {
				t.Errorf("Expected instructions in draft %q", d.Title)
			}
		}
	})

	t.Run("RestrictionsInTitle", func(t *testing.T) {
		drafts, err := synth.Synthesize(ctx, []string{"tofu"}, []string{"vegan", "gluten-free"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := "Hearty Tofu Skillet (vegan, gluten-free)"
		if drafts[0].Title != want {
			t.Errorf("Expected title %q, got %q", want, drafts[0].Title)
		}
	})

	t.Run("EmptyIngredients", func(t *testing.T) {
		if _, err := synth.Synthesize(ctx, nil, nil); err == nil {
			t.Fatal("Expected an error for empty ingredients, got nil")
		}
	})
}

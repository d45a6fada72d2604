package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/llm"
	"app/internal/model"

	"github.com/rs/zerolog"
)

// mockSynthesizer returns a fixed draft set, or fails on demand.
type mockSynthesizer struct {
	drafts      []llm.RecipeDraft
	shouldError bool
	calls       int
}

func (m *mockSynthesizer) Synthesize(_ context.Context, _, _ []string) ([]llm.RecipeDraft, error) {
	m.calls++
	if m.shouldError {
		return nil, errors.New("synthesis error")
	}
	return m.drafts, nil
}

func testDrafts() []llm.RecipeDraft {
	return []llm.RecipeDraft{
		{
			Title:       "Tomato Rice",
			Description: "A simple tomato rice.",
			Ingredients: []llm.IngredientDraft{
				{Name: "tomato", Amount: "2", Unit: "cups"},
				{Name: "rice", Amount: "1", Unit: "cup"},
			},
			Instructions: []llm.InstructionDraft{
				{Step: 1, Text: "Cook the rice."},
				{Step: 2, Text: "Stir in the tomatoes."},
			},
			CookTime:   25,
			Servings:   4,
			Difficulty: "easy",
			Rating:     4.1,
		},
		{
			Title:       "Tomato Soup",
			Difficulty:  "nonsense",
			Ingredients: []llm.IngredientDraft{{Name: "tomato", Amount: "4", Unit: ""}},
		},
	}
}

func TestRecipeGenerate(t *testing.T) {
	ctx := context.Background()

	newService := func(user *model.User, synth *mockSynthesizer) (RecipeService, *mockUserRepo, *mockRecipeRepo) {
		userRepo := newMockUserRepo()
		if user != nil {
			userRepo.CreateUser(ctx, user)
		}
		recipeRepo := &mockRecipeRepo{}
		quotaSvc := NewQuotaService(userRepo, 2, zerolog.Nop())
		svc := NewRecipeService(recipeRepo, userRepo, quotaSvc, synth, nil, zerolog.Nop())
		return svc, userRepo, recipeRepo
	}

	freeUser := func() *model.User {
		return &model.User{UserID: "u1", Tier: model.TierFree, CountResetAt: time.Now()}
	}

	t.Run("Success", func(t *testing.T) {
		synth := &mockSynthesizer{drafts: testDrafts()}
		svc, userRepo, recipeRepo := newService(freeUser(), synth)

		recipes, err := svc.Generate(ctx, "u1", []string{"tomato", "rice"}, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(recipes) != 2 {
			t.Fatalf("Expected 2 recipes, got %d", len(recipes))
		}
		if recipes[0].Title != "Tomato Rice" {
			t.Errorf("Expected title 'Tomato Rice', got %q", recipes[0].Title)
		}
		if recipes[0].UserID != "u1" {
			t.Errorf("Expected owner u1, got %q", recipes[0].UserID)
		}
		// Unknown difficulty falls back to medium.
		if recipes[1].Difficulty != model.DifficultyMedium {
			t.Errorf("Expected medium difficulty fallback, got %q", recipes[1].Difficulty)
		}
		if len(recipeRepo.recipes) != 2 {
			t.Errorf("Expected 2 persisted recipes, got %d", len(recipeRepo.recipes))
		}

		// One generation counts once against the quota, not once per recipe.
		u, _ := userRepo.GetUserByID(ctx, "u1")
		if u.MonthlyRecipeCount != 1 {
			t.Errorf("Expected recipe count 1 after one generation, got %d", u.MonthlyRecipeCount)
		}
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		user := freeUser()
		user.MonthlyRecipeCount = 2
		synth := &mockSynthesizer{drafts: testDrafts()}
		svc, _, recipeRepo := newService(user, synth)

		_, err := svc.Generate(ctx, "u1", []string{"tomato"}, nil)
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
		}
		if synth.calls != 0 {
			t.Errorf("Expected no synthesis when gated, got %d calls", synth.calls)
		}
		if len(recipeRepo.recipes) != 0 {
			t.Errorf("Expected no persisted recipes when gated, got %d", len(recipeRepo.recipes))
		}
	})

	t.Run("EmptyIngredients", func(t *testing.T) {
		svc, _, _ := newService(freeUser(), &mockSynthesizer{})
		if _, err := svc.Generate(ctx, "u1", nil, nil); !errors.Is(err, ErrNoIngredients) {
			t.Fatalf("Expected ErrNoIngredients, got %v", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, _, _ := newService(nil, &mockSynthesizer{})
		if _, err := svc.Generate(ctx, "ghost", []string{"tomato"}, nil); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("SynthesisFailureDoesNotAdvanceQuota", func(t *testing.T) {
		synth := &mockSynthesizer{shouldError: true}
		svc, userRepo, _ := newService(freeUser(), synth)

		if _, err := svc.Generate(ctx, "u1", []string{"tomato"}, nil); err == nil {
			t.Fatal("Expected an error, got nil")
		}
		u, _ := userRepo.GetUserByID(ctx, "u1")
		if u.MonthlyRecipeCount != 0 {
			t.Errorf("Expected unchanged recipe count, got %d", u.MonthlyRecipeCount)
		}
	})
}

func TestRecipeOwnership(t *testing.T) {
	ctx := context.Background()
	recipeRepo := &mockRecipeRepo{recipes: []model.Recipe{{ID: "r1", UserID: "u1", Title: "Stew"}}}
	svc := NewRecipeService(recipeRepo, newMockUserRepo(), nil, nil, nil, zerolog.Nop())

	t.Run("OwnerReads", func(t *testing.T) {
		rec, err := svc.Get(ctx, "r1", "u1")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Title != "Stew" {
			t.Errorf("Expected title 'Stew', got %q", rec.Title)
		}
	})

	t.Run("ForeignUserForbidden", func(t *testing.T) {
		if _, err := svc.Get(ctx, "r1", "intruder"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("UnknownRecipe", func(t *testing.T) {
		if _, err := svc.Get(ctx, "missing", "u1"); !errors.Is(err, ErrRecipeNotFound) {
			t.Fatalf("Expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("UpdateSavedAndRating", func(t *testing.T) {
		rec, err := svc.UpdateSavedAndRating(ctx, "r1", "u1", true, 4.5)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !rec.IsSaved || rec.Rating != 4.5 {
			t.Errorf("Expected saved recipe rated 4.5, got %+v", rec)
		}
	})

	t.Run("DeleteEnforcesOwnership", func(t *testing.T) {
		if err := svc.Delete(ctx, "r1", "intruder"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Expected ErrUnauthorized, got %v", err)
		}
		if err := svc.Delete(ctx, "r1", "u1"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})
}

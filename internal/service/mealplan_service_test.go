package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "Wednesday",
			in:   time.Date(2025, time.May, 14, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "MondayIsItsOwnWeekStart",
			in:   time.Date(2025, time.May, 12, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "SundayBelongsToPrecedingMonday",
			in:   time.Date(2025, time.May, 18, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("Expected Monday, got %v", got.Weekday())
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("Expected midnight, got %v", got)
			}
		})
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMealPlanGenerate(t *testing.T) {
	ctx := context.Background()

	newService := func(recipes ...model.Recipe) (MealPlanService, *mockPlanRepo) {
		planRepo := newMockPlanRepo()
		recipeRepo := &mockRecipeRepo{recipes: recipes}
		return NewMealPlanService(planRepo, recipeRepo, zerolog.Nop()), planRepo
	}

	recipe := model.Recipe{
		ID:     "r1",
		UserID: "u1",
		Title:  "Lentil Stew",
		Ingredients: []model.Ingredient{
			{Name: "lentils", Amount: "2", Unit: "cups"},
		},
	}

	t.Run("RejectsNonPositiveBudget", func(t *testing.T) {
		svc, _ := newService(recipe)
		if _, err := svc.Generate(ctx, "u1", "week", 0, nil); !errors.Is(err, ErrInvalidBudget) {
			t.Fatalf("Expected ErrInvalidBudget, got %v", err)
		}
		if _, err := svc.Generate(ctx, "u1", "week", -5, nil); !errors.Is(err, ErrInvalidBudget) {
			t.Fatalf("Expected ErrInvalidBudget, got %v", err)
		}
	})

	t.Run("SeventyDollarWeek", func(t *testing.T) {
		svc, planRepo := newService(recipe)
		result, err := svc.Generate(ctx, "u1", "week", 70, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(result.Meals) != 21 {
			t.Fatalf("Expected 21 meals (7 days x 3 slots), got %d", len(result.Meals))
		}

		// Per-meal targets: share of the weekly budget divided across 7 days.
		wantPerType := map[string]float64{
			model.MealTypeBreakfast: 70 * BreakfastShare / 7, // 1.50
			model.MealTypeLunch:     70 * LunchShare / 7,     // 3.50
			model.MealTypeDinner:    70 * DinnerShare / 7,    // 4.00
		}
		for _, meal := range result.Meals {
			want, ok := wantPerType[meal.MealType]
			if !ok {
				t.Fatalf("Unexpected meal type %q", meal.MealType)
			}
			if !approx(meal.EstimatedCost, want) {
				t.Errorf("Expected %s cost %.2f, got %.2f", meal.MealType, want, meal.EstimatedCost)
			}
			if meal.RecipeID == nil || *meal.RecipeID != "r1" {
				t.Errorf("Expected meal to reference recipe r1")
			}
		}

		// 90% of the budget is allocated; the rest is slack reported as savings.
		if !approx(result.TotalCost, 63.0) {
			t.Errorf("Expected total cost 63.00, got %.2f", result.TotalCost)
		}
		if !approx(result.Savings, 7.0) {
			t.Errorf("Expected savings 7.00, got %.2f", result.Savings)
		}
		if result.Plan.ActualCost != "63.00" {
			t.Errorf("Expected actual cost %q, got %q", "63.00", result.Plan.ActualCost)
		}

		stored, _ := planRepo.GetMealPlanByID(ctx, result.Plan.ID)
		if stored == nil || stored.ActualCost != "63.00" {
			t.Errorf("Expected stored plan cost 63.00, got %+v", stored)
		}
		if result.Plan.WeekStart.Weekday() != time.Monday {
			t.Errorf("Expected plan week to start on Monday, got %v", result.Plan.WeekStart.Weekday())
		}
	})

	t.Run("EmptyRecipeLibrary", func(t *testing.T) {
		svc, _ := newService()
		result, err := svc.Generate(ctx, "u1", "week", 50, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(result.Meals) != 0 {
			t.Errorf("Expected no meals without recipes, got %d", len(result.Meals))
		}
		if !approx(result.TotalCost, 0) {
			t.Errorf("Expected zero cost, got %.2f", result.TotalCost)
		}
		if !approx(result.Savings, 50) {
			t.Errorf("Expected full budget as savings, got %.2f", result.Savings)
		}
		if result.Plan.ActualCost != "0.00" {
			t.Errorf("Expected actual cost %q, got %q", "0.00", result.Plan.ActualCost)
		}
	})

	t.Run("RestrictionsDoNotEmptyThePlan", func(t *testing.T) {
		svc, _ := newService(recipe)
		result, err := svc.Generate(ctx, "u1", "week", 70, []string{"vegan", "gluten-free"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(result.Meals) != 21 {
			t.Errorf("Expected 21 meals with restrictions, got %d", len(result.Meals))
		}
	})
}

func TestMealPlanOptimize(t *testing.T) {
	ctx := context.Background()

	recipe := model.Recipe{
		ID:     "r1",
		UserID: "u1",
		Ingredients: []model.Ingredient{
			{Name: "chicken breast", Amount: "500", Unit: "g"},
		},
	}

	setup := func() (MealPlanService, *mockPlanRepo, string) {
		planRepo := newMockPlanRepo()
		recipeRepo := &mockRecipeRepo{recipes: []model.Recipe{recipe}}
		svc := NewMealPlanService(planRepo, recipeRepo, zerolog.Nop())

		result, err := svc.Generate(ctx, "u1", "week", 70, nil)
		if err != nil {
			t.Fatalf("Setup generate failed: %v", err)
		}
		return svc, planRepo, result.Plan.ID
	}

	t.Run("Deterministic", func(t *testing.T) {
		svc, _, planID := setup()
		first, err := svc.Optimize(ctx, planID, "u1")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(first.Substitutions) != 21 {
			t.Fatalf("Expected a substitution per meal, got %d", len(first.Substitutions))
		}
		for _, sub := range first.Substitutions {
			if sub.Original != "chicken breast" {
				t.Errorf("Expected lead ingredient as original, got %q", sub.Original)
			}
			if sub.Substitute == "" {
				t.Errorf("Expected a substitute for meal %s", sub.MealID)
			}
			if sub.Saved < 0 {
				t.Errorf("Expected non-negative savings, got %.2f", sub.Saved)
			}
		}
		if first.TotalSaved <= 0 {
			t.Errorf("Expected positive total savings, got %.2f", first.TotalSaved)
		}
	})

	t.Run("NeverDropsBelowZero", func(t *testing.T) {
		svc, planRepo, planID := setup()
		// Force one meal to a cost smaller than any table entry.
		planRepo.meals[0].EstimatedCost = 0.10
		mealID := planRepo.meals[0].ID

		result, err := svc.Optimize(ctx, planID, "u1")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		for _, meal := range result.Meals {
			if meal.EstimatedCost < 0 {
				t.Errorf("Meal %s has negative cost %.2f", meal.ID, meal.EstimatedCost)
			}
		}
		for _, sub := range result.Substitutions {
			if sub.MealID == mealID && sub.Saved > 0.10+1e-9 {
				t.Errorf("Expected savings clamped to 0.10, got %.2f", sub.Saved)
			}
		}
	})

	t.Run("OwnershipEnforced", func(t *testing.T) {
		svc, _, planID := setup()
		if _, err := svc.Optimize(ctx, planID, "intruder"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("UnknownPlan", func(t *testing.T) {
		svc, _, _ := setup()
		if _, err := svc.Optimize(ctx, "missing", "u1"); !errors.Is(err, ErrPlanNotFound) {
			t.Fatalf("Expected ErrPlanNotFound, got %v", err)
		}
	})
}

func TestPickSubstitutionIsStable(t *testing.T) {
	a := pickSubstitution("meal-1", "butter")
	b := pickSubstitution("meal-1", "butter")
	if a != b {
		t.Errorf("Expected identical picks for identical input, got %+v and %+v", a, b)
	}
}

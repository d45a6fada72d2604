package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/model"

	"github.com/rs/zerolog"
)

func TestCategorizeIngredient(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Whole Milk", model.CategoryDairy},
		{"Cheddar Cheese", model.CategoryDairy},
		{"Ground Beef", model.CategoryMeat},
		{"Chicken Thighs", model.CategoryMeat},
		{"Roma Tomatoes", model.CategoryProduce},
		{"Red Onion", model.CategoryProduce},
		{"Basmati Rice", model.CategoryPantry},
		{"All-Purpose Flour", model.CategoryPantry},
		{"Sea Salt", model.CategoryOther},
		{"Olive Oil", model.CategoryOther},
		// Substring matching, not word matching.
		{"cheeseburger", model.CategoryDairy},
		// Dairy wins over meat when both match.
		{"buttermilk fried chicken", model.CategoryDairy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeIngredient(tt.name); got != tt.want {
				t.Errorf("CategorizeIngredient(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestGenerateFromRecipes(t *testing.T) {
	ctx := context.Background()

	recipes := []model.Recipe{
		{
			ID:     "r1",
			UserID: "u1",
			Ingredients: []model.Ingredient{
				{Name: "Tomato", Amount: "2", Unit: "cups"},
				{Name: "Rice", Amount: "1", Unit: "cup"},
			},
		},
		{
			ID:     "r2",
			UserID: "u1",
			Ingredients: []model.Ingredient{
				{Name: "tomato", Amount: "1", Unit: "cup"},
				{Name: "Chicken Breast", Amount: "500", Unit: "g"},
			},
		},
	}

	newService := func() (ShoppingService, *mockShoppingRepo) {
		shoppingRepo := newMockShoppingRepo()
		recipeRepo := &mockRecipeRepo{recipes: recipes}
		return NewShoppingService(shoppingRepo, recipeRepo, zerolog.Nop()), shoppingRepo
	}

	t.Run("MergesByLowercasedName", func(t *testing.T) {
		svc, repo := newService()
		list, err := svc.GenerateFromRecipes(ctx, "u1", "groceries", []string{"r1", "r2"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		items, _ := repo.GetItems(ctx, list.ID)
		if len(items) != 3 {
			t.Fatalf("Expected 3 merged items, got %d", len(items))
		}

		// First-seen insertion order.
		if items[0].Name != "tomato" || items[1].Name != "rice" || items[2].Name != "chicken breast" {
			t.Errorf("Unexpected item order: %q, %q, %q", items[0].Name, items[1].Name, items[2].Name)
		}

		// Amounts concatenate textually rather than summing.
		if items[0].Amount != "2 cups + 1 cup" {
			t.Errorf("Expected amount %q, got %q", "2 cups + 1 cup", items[0].Amount)
		}
		if items[0].Category != model.CategoryProduce {
			t.Errorf("Expected tomato in produce, got %q", items[0].Category)
		}
		if items[0].RecipeID == nil || *items[0].RecipeID != "r1" {
			t.Errorf("Expected merged item to keep the first recipe reference")
		}
		if items[2].Category != model.CategoryMeat {
			t.Errorf("Expected chicken breast in meat, got %q", items[2].Category)
		}
	})

	t.Run("SkipsForeignRecipes", func(t *testing.T) {
		shoppingRepo := newMockShoppingRepo()
		recipeRepo := &mockRecipeRepo{recipes: []model.Recipe{
			{ID: "r3", UserID: "someone-else", Ingredients: []model.Ingredient{{Name: "Milk", Amount: "1", Unit: "l"}}},
		}}
		svc := NewShoppingService(shoppingRepo, recipeRepo, zerolog.Nop())

		list, err := svc.GenerateFromRecipes(ctx, "u1", "groceries", []string{"r3"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		items, _ := shoppingRepo.GetItems(ctx, list.ID)
		if len(items) != 0 {
			t.Errorf("Expected no items from foreign recipes, got %d", len(items))
		}
	})
}

func TestShoppingListOwnership(t *testing.T) {
	ctx := context.Background()
	shoppingRepo := newMockShoppingRepo()
	recipeRepo := &mockRecipeRepo{}
	svc := NewShoppingService(shoppingRepo, recipeRepo, zerolog.Nop())

	list, err := svc.CreateList(ctx, "u1", "weekly")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("ForeignUserCannotRead", func(t *testing.T) {
		if _, _, err := svc.Get(ctx, list.ID, "intruder"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("UnknownList", func(t *testing.T) {
		if _, _, err := svc.Get(ctx, "missing", "u1"); !errors.Is(err, ErrListNotFound) {
			t.Fatalf("Expected ErrListNotFound, got %v", err)
		}
	})

	t.Run("ItemLifecycle", func(t *testing.T) {
		item := &model.ShoppingListItem{Name: "Whole Milk", Amount: "1", Unit: "l"}
		if err := svc.AddItem(ctx, list.ID, "u1", item); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if item.Category != model.CategoryDairy {
			t.Errorf("Expected auto-categorized dairy, got %q", item.Category)
		}

		if err := svc.SetItemChecked(ctx, list.ID, item.ID, "u1", true); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		_, items, _ := svc.Get(ctx, list.ID, "u1")
		if len(items) != 1 || !items[0].IsChecked {
			t.Errorf("Expected checked item, got %+v", items)
		}

		if err := svc.DeleteItem(ctx, list.ID, item.ID, "u1"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		_, items, _ = svc.Get(ctx, list.ID, "u1")
		if len(items) != 0 {
			t.Errorf("Expected empty list after delete, got %d items", len(items))
		}
	})
}

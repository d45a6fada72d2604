package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
)

// mockUserRepo is an in-memory UserRepository for testing.
type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u *model.User) error {
	cp := *u
	m.users[u.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetUserByStripeCustomerID(_ context.Context, customerID string) (*model.User, error) {
	for _, u := range m.users {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateDietaryRestrictions(_ context.Context, userID string, restrictions []string) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.DietaryRestrictions = restrictions
	return nil
}

func (m *mockUserRepo) UpdateStripeCustomerID(_ context.Context, userID, customerID string) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.StripeCustomerID = &customerID
	return nil
}

func (m *mockUserRepo) UpdateSubscription(_ context.Context, userID, tier string, stripeSubscriptionID *string) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Tier = tier
	u.StripeSubscriptionID = stripeSubscriptionID
	return nil
}

func (m *mockUserRepo) AdvanceRecipeCount(_ context.Context, userID string, now time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	if MonthsSince(u.CountResetAt, now) >= 1 {
		u.MonthlyRecipeCount = 1
		u.CountResetAt = now
	} else {
		u.MonthlyRecipeCount++
	}
	return nil
}

// mockRecipeRepo is an in-memory RecipeRepository for testing. Recipes are
// kept in insertion order, matching the repository's created_at ordering.
type mockRecipeRepo struct {
	recipes []model.Recipe
}

func (m *mockRecipeRepo) CreateRecipe(_ context.Context, rec *model.Recipe) error {
	m.recipes = append(m.recipes, *rec)
	return nil
}

func (m *mockRecipeRepo) GetRecipeByID(_ context.Context, id string) (*model.Recipe, error) {
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			cp := m.recipes[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRecipeRepo) GetRecipesByUserID(_ context.Context, userID string) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, r := range m.recipes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecipeRepo) GetRecipesByIDs(_ context.Context, ids []string) ([]model.Recipe, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []model.Recipe
	for _, r := range m.recipes {
		if wanted[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecipeRepo) UpdateSavedAndRating(_ context.Context, id string, isSaved bool, rating float64) error {
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			m.recipes[i].IsSaved = isSaved
			m.recipes[i].Rating = rating
			return nil
		}
	}
	return errors.New("recipe not found")
}

func (m *mockRecipeRepo) DeleteRecipe(_ context.Context, id string) error {
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			m.recipes = append(m.recipes[:i], m.recipes[i+1:]...)
			return nil
		}
	}
	return errors.New("recipe not found")
}

// mockPlanRepo is an in-memory MealPlanRepository for testing.
type mockPlanRepo struct {
	plans map[string]*model.MealPlan
	meals []model.PlannedMeal
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*model.MealPlan)}
}

func (m *mockPlanRepo) CreateMealPlan(_ context.Context, plan *model.MealPlan) error {
	cp := *plan
	m.plans[plan.ID] = &cp
	return nil
}

func (m *mockPlanRepo) GetMealPlanByID(_ context.Context, id string) (*model.MealPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlanRepo) GetMealPlansByUserID(_ context.Context, userID string) ([]model.MealPlan, error) {
	var out []model.MealPlan
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPlanRepo) UpdateActualCost(_ context.Context, planID, actualCost string) error {
	p, ok := m.plans[planID]
	if !ok {
		return errors.New("plan not found")
	}
	p.ActualCost = actualCost
	return nil
}

func (m *mockPlanRepo) DeleteMealPlan(_ context.Context, id string) error {
	delete(m.plans, id)
	return nil
}

func (m *mockPlanRepo) CreatePlannedMeal(_ context.Context, meal *model.PlannedMeal) error {
	m.meals = append(m.meals, *meal)
	return nil
}

func (m *mockPlanRepo) GetPlannedMeals(_ context.Context, planID string) ([]model.PlannedMeal, error) {
	var out []model.PlannedMeal
	for _, meal := range m.meals {
		if meal.PlanID == planID {
			out = append(out, meal)
		}
	}
	return out, nil
}

func (m *mockPlanRepo) UpdateEstimatedCost(_ context.Context, mealID string, estimatedCost float64) error {
	for i := range m.meals {
		if m.meals[i].ID == mealID {
			m.meals[i].EstimatedCost = estimatedCost
			return nil
		}
	}
	return errors.New("meal not found")
}

// mockShoppingRepo is an in-memory ShoppingRepository for testing.
type mockShoppingRepo struct {
	lists map[string]*model.ShoppingList
	items []model.ShoppingListItem
}

func newMockShoppingRepo() *mockShoppingRepo {
	return &mockShoppingRepo{lists: make(map[string]*model.ShoppingList)}
}

func (m *mockShoppingRepo) CreateList(_ context.Context, list *model.ShoppingList) error {
	cp := *list
	m.lists[list.ID] = &cp
	return nil
}

func (m *mockShoppingRepo) GetListByID(_ context.Context, id string) (*model.ShoppingList, error) {
	l, ok := m.lists[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *mockShoppingRepo) GetListsByUserID(_ context.Context, userID string) ([]model.ShoppingList, error) {
	var out []model.ShoppingList
	for _, l := range m.lists {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockShoppingRepo) DeleteList(_ context.Context, id string) error {
	delete(m.lists, id)
	return nil
}

func (m *mockShoppingRepo) CreateItem(_ context.Context, item *model.ShoppingListItem) error {
	m.items = append(m.items, *item)
	return nil
}

func (m *mockShoppingRepo) GetItems(_ context.Context, listID string) ([]model.ShoppingListItem, error) {
	var out []model.ShoppingListItem
	for _, item := range m.items {
		if item.ListID == listID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockShoppingRepo) GetItemByID(_ context.Context, id string) (*model.ShoppingListItem, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			cp := m.items[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockShoppingRepo) UpdateItemChecked(_ context.Context, itemID string, isChecked bool) error {
	for i := range m.items {
		if m.items[i].ID == itemID {
			m.items[i].IsChecked = isChecked
			return nil
		}
	}
	return errors.New("item not found")
}

func (m *mockShoppingRepo) DeleteItem(_ context.Context, itemID string) error {
	for i := range m.items {
		if m.items[i].ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("item not found")
}

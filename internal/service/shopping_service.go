package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrListNotFound = errors.New("shopping list not found")

// ShoppingService manages shopping lists, including bulk generation from a
// set of recipes.
type ShoppingService interface {
	// GenerateFromRecipes creates a list whose items are the deduplicated
	// union of all ingredients across the selected recipes.
	GenerateFromRecipes(ctx context.Context, userID, name string, recipeIDs []string) (*model.ShoppingList, error)
	CreateList(ctx context.Context, userID, name string) (*model.ShoppingList, error)
	List(ctx context.Context, userID string) ([]model.ShoppingList, error)
	Get(ctx context.Context, listID, userID string) (*model.ShoppingList, []model.ShoppingListItem, error)
	Delete(ctx context.Context, listID, userID string) error
	AddItem(ctx context.Context, listID, userID string, item *model.ShoppingListItem) error
	SetItemChecked(ctx context.Context, listID, itemID, userID string, isChecked bool) error
	DeleteItem(ctx context.Context, listID, itemID, userID string) error
}

type shoppingService struct {
	shoppingRepo repository.ShoppingRepository
	recipeRepo   repository.RecipeRepository
	logger       zerolog.Logger
}

// NewShoppingService creates a ShoppingService.
func NewShoppingService(shoppingRepo repository.ShoppingRepository, recipeRepo repository.RecipeRepository, logger zerolog.Logger) ShoppingService {
	return &shoppingService{
		shoppingRepo: shoppingRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.With().Str("service", "ShoppingService").Logger(),
	}
}

// categoryKeywords drives the grocery-aisle classifier, checked in priority
// order with first match winning. Matching is case-insensitive substring
// containment, not tokenized word matching ("cheeseburger" is dairy).
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{model.CategoryDairy, []string{"milk", "cheese", "yogurt", "butter"}},
	{model.CategoryMeat, []string{"chicken", "beef", "pork", "fish", "turkey"}},
	{model.CategoryProduce, []string{"lettuce", "tomato", "onion", "carrot", "pepper"}},
	{model.CategoryPantry, []string{"bread", "pasta", "rice", "flour"}},
}

// CategorizeIngredient derives the grocery category tag for an ingredient
// name.
func CategorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return model.CategoryOther
}

// mergedItem accumulates one ingredient across recipes during generation.
type mergedItem struct {
	amount   string
	unit     string
	category string
	recipeID string
	order    int
}

func (s *shoppingService) GenerateFromRecipes(ctx context.Context, userID, name string, recipeIDs []string) (*model.ShoppingList, error) {
	list := &model.ShoppingList{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := s.shoppingRepo.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("creating shopping list: %w", err)
	}

	recipes, err := s.recipeRepo.GetRecipesByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	// Merge keyed by lower-cased ingredient name. Repeat sightings keep the
	// first unit/category/recipe and concatenate amounts textually: "2 cups"
	// plus "1 cup" becomes "2 cups + 1 cup", not "3 cups". The textual merge
	// is deliberate; quantities across recipes are not unit-normalized.
	merged := make(map[string]*mergedItem)
	order := 0
	for _, rec := range recipes {
		if rec.UserID != userID {
			continue
		}
		for _, ing := range rec.Ingredients {
			key := strings.ToLower(ing.Name)
			amount := strings.TrimSpace(ing.Amount + " " + ing.Unit)
			if existing, ok := merged[key]; ok {
				existing.amount = existing.amount + " + " + amount
				continue
			}
			merged[key] = &mergedItem{
				amount:   amount,
				unit:     ing.Unit,
				category: CategorizeIngredient(ing.Name),
				recipeID: rec.ID,
				order:    order,
			}
			order++
		}
	}

	// Insert in first-seen order for stable output.
	ordered := make([]string, len(merged))
	for key, m := range merged {
		ordered[m.order] = key
	}
	for _, key := range ordered {
		m := merged[key]
		recipeID := m.recipeID
		item := model.ShoppingListItem{
			ID:       uuid.NewString(),
			ListID:   list.ID,
			Name:     key,
			Amount:   m.amount,
			Unit:     m.unit,
			Category: m.category,
			RecipeID: &recipeID,
		}
		if err := s.shoppingRepo.CreateItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("creating shopping list item: %w", err)
		}
	}

	s.logger.Info().Str("user_id", userID).Str("list_id", list.ID).
		Int("recipes", len(recipes)).Int("items", len(merged)).Msg("Generated shopping list")
	return list, nil
}

func (s *shoppingService) CreateList(ctx context.Context, userID, name string) (*model.ShoppingList, error) {
	list := &model.ShoppingList{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := s.shoppingRepo.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("creating shopping list: %w", err)
	}
	return list, nil
}

func (s *shoppingService) List(ctx context.Context, userID string) ([]model.ShoppingList, error) {
	lists, err := s.shoppingRepo.GetListsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing shopping lists: %w", err)
	}
	return lists, nil
}

func (s *shoppingService) Get(ctx context.Context, listID, userID string) (*model.ShoppingList, []model.ShoppingListItem, error) {
	list, err := s.ownedList(ctx, listID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.shoppingRepo.GetItems(ctx, listID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing items: %w", err)
	}
	return list, items, nil
}

func (s *shoppingService) Delete(ctx context.Context, listID, userID string) error {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return err
	}
	if err := s.shoppingRepo.DeleteList(ctx, listID); err != nil {
		return fmt.Errorf("deleting shopping list: %w", err)
	}
	return nil
}

func (s *shoppingService) AddItem(ctx context.Context, listID, userID string, item *model.ShoppingListItem) error {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return err
	}
	item.ID = uuid.NewString()
	item.ListID = listID
	if item.Category == "" {
		item.Category = CategorizeIngredient(item.Name)
	}
	if err := s.shoppingRepo.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("adding shopping list item: %w", err)
	}
	return nil
}

func (s *shoppingService) SetItemChecked(ctx context.Context, listID, itemID, userID string, isChecked bool) error {
	if err := s.ownedItem(ctx, listID, itemID, userID); err != nil {
		return err
	}
	if err := s.shoppingRepo.UpdateItemChecked(ctx, itemID, isChecked); err != nil {
		return fmt.Errorf("updating shopping list item: %w", err)
	}
	return nil
}

func (s *shoppingService) DeleteItem(ctx context.Context, listID, itemID, userID string) error {
	if err := s.ownedItem(ctx, listID, itemID, userID); err != nil {
		return err
	}
	if err := s.shoppingRepo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("deleting shopping list item: %w", err)
	}
	return nil
}

func (s *shoppingService) ownedList(ctx context.Context, listID, userID string) (*model.ShoppingList, error) {
	list, err := s.shoppingRepo.GetListByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("getting shopping list: %w", err)
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	if list.UserID != userID {
		return nil, ErrUnauthorized
	}
	return list, nil
}

func (s *shoppingService) ownedItem(ctx context.Context, listID, itemID, userID string) error {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return err
	}
	item, err := s.shoppingRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("getting shopping list item: %w", err)
	}
	if item == nil || item.ListID != listID {
		return ErrListNotFound
	}
	return nil
}

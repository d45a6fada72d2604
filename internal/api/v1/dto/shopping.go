package dto

import (
	"time"

	"app/internal/model"
)

// ShoppingListGenerateRequest builds a list from a set of recipes.
type ShoppingListGenerateRequest struct {
	Name      string   `json:"name" validate:"required"`
	RecipeIDs []string `json:"recipe_ids" validate:"required,min=1,dive,required"`
}

// ShoppingListCreateDTO creates an empty list.
type ShoppingListCreateDTO struct {
	Name string `json:"name" validate:"required"`
}

// ShoppingListItemCreateDTO adds an item manually.
type ShoppingListItemCreateDTO struct {
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// ShoppingListItemUpdateDTO toggles the checked flag.
type ShoppingListItemUpdateDTO struct {
	IsChecked bool `json:"is_checked"`
}

// ShoppingListResponseDTO is returned in API responses.
type ShoppingListResponseDTO struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"created_at"`
	Items     []model.ShoppingListItem `json:"items,omitempty"`
}

// FromShoppingList maps a domain list to its response DTO.
func FromShoppingList(list *model.ShoppingList, items []model.ShoppingListItem) ShoppingListResponseDTO {
	return ShoppingListResponseDTO{
		ID:        list.ID,
		Name:      list.Name,
		CreatedAt: list.CreatedAt,
		Items:     items,
	}
}

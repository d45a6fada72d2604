package dto

import "time"

// CollectionCreateDTO creates or updates a collection.
type CollectionCreateDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CollectionRecipeDTO adds a recipe to a collection.
type CollectionRecipeDTO struct {
	RecipeID string `json:"recipe_id" validate:"required"`
}

// CollectionResponseDTO is returned in API responses.
type CollectionResponseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RecipeIDs   []string  `json:"recipe_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

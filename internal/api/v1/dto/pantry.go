package dto

import "time"

// PantryItemDTO creates or updates a pantry item.
type PantryItemDTO struct {
	Name      string     `json:"name" validate:"required"`
	Quantity  string     `json:"quantity"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PantryItemResponseDTO is returned in API responses.
type PantryItemResponseDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Quantity  string     `json:"quantity"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CookingHistoryCreateDTO records a cook of a recipe.
type CookingHistoryCreateDTO struct {
	RecipeID string     `json:"recipe_id" validate:"required"`
	CookedAt *time.Time `json:"cooked_at,omitempty"`
	Rating   *int       `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Notes    string     `json:"notes"`
}

// CookingHistoryResponseDTO is returned in API responses.
type CookingHistoryResponseDTO struct {
	ID       string    `json:"id"`
	RecipeID string    `json:"recipe_id"`
	CookedAt time.Time `json:"cooked_at"`
	Rating   *int      `json:"rating,omitempty"`
	Notes    string    `json:"notes"`
}

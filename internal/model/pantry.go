package model

import "time"

// PantryItem is a single tracked ingredient in a user's pantry.
type PantryItem struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Name      string     `db:"name" json:"name"`
	Quantity  string     `db:"quantity" json:"quantity"`
	Unit      string     `db:"unit" json:"unit"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CookingHistory records one cook of a recipe.
type CookingHistory struct {
	ID       string    `db:"id" json:"id"`
	UserID   string    `db:"user_id" json:"user_id"`
	RecipeID string    `db:"recipe_id" json:"recipe_id"`
	CookedAt time.Time `db:"cooked_at" json:"cooked_at"`
	Rating   *int      `db:"rating" json:"rating,omitempty"`
	Notes    string    `db:"notes" json:"notes"`
}

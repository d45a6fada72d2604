package model

import "time"

// Shopping item categories, coarse grocery-aisle tags derived by keyword
// match on the ingredient name.
const (
	CategoryDairy   = "dairy"
	CategoryMeat    = "meat"
	CategoryProduce = "produce"
	CategoryPantry  = "pantry"
	CategoryOther   = "other"
)

// ShoppingList is a user-owned list of items, either built manually or
// generated from a set of recipes.
type ShoppingList struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ShoppingListItem is one entry of a shopping list. When a list is generated
// from recipes, repeat sightings of the same ingredient concatenate their
// amount strings rather than summing quantities.
type ShoppingListItem struct {
	ID        string  `db:"id" json:"id"`
	ListID    string  `db:"list_id" json:"list_id"`
	Name      string  `db:"name" json:"name"`
	Amount    string  `db:"amount" json:"amount"`
	Unit      string  `db:"unit" json:"unit"`
	Category  string  `db:"category" json:"category"`
	IsChecked bool    `db:"is_checked" json:"is_checked"`
	RecipeID  *string `db:"recipe_id" json:"recipe_id,omitempty"`
}

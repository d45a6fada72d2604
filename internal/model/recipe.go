package model

import "time"

// Recipe difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Ingredient is one entry of a recipe's ingredient list. Amount is kept as a
// free-form string ("2", "1/2", "a pinch") exactly as synthesized.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Instruction is one step of a recipe, optionally with a duration in minutes.
type Instruction struct {
	Step            int    `json:"step"`
	Text            string `json:"text"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// Recipe represents a synthesized recipe owned by a user. It is immutable
// once created except for the saved flag and rating.
type Recipe struct {
	ID              string        `db:"id" json:"id"`
	UserID          string        `db:"user_id" json:"user_id"`
	Title           string        `db:"title" json:"title"`
	Description     string        `db:"description" json:"description"`
	Ingredients     []Ingredient  `db:"ingredients" json:"ingredients"`
	Instructions    []Instruction `db:"instructions" json:"instructions"`
	CookTimeMinutes int           `db:"cook_time_minutes" json:"cook_time_minutes"`
	Servings        int           `db:"servings" json:"servings"`
	Difficulty      string        `db:"difficulty" json:"difficulty"`
	Rating          float64       `db:"rating" json:"rating"`
	IsSaved         bool          `db:"is_saved" json:"is_saved"`
	ImageURL        string        `db:"image_url" json:"image_url"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

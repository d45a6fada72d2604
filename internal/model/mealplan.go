package model

import "time"

// Meal slot types within a plan
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// MealPlan is one week of planned meals against a dollar budget. WeekStart is
// always normalized to the Monday of the plan's week at midnight.
type MealPlan struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	WeekStart    time.Time `db:"week_start" json:"week_start"`
	WeeklyBudget float64   `db:"weekly_budget" json:"weekly_budget"`
	// ActualCost is the running total of estimated meal costs, stored
	// formatted to two decimal places.
	ActualCost string    `db:"actual_cost" json:"actual_cost"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// PlannedMeal is one breakfast/lunch/dinner/snack slot within a meal plan.
// EstimatedCost is assigned at creation from the budget split and may later
// be reduced by optimization, never increased.
type PlannedMeal struct {
	ID            string    `db:"id" json:"id"`
	PlanID        string    `db:"plan_id" json:"plan_id"`
	RecipeID      *string   `db:"recipe_id" json:"recipe_id,omitempty"`
	MealType      string    `db:"meal_type" json:"meal_type"`
	ScheduledDate time.Time `db:"scheduled_date" json:"scheduled_date"`
	Servings      int       `db:"servings" json:"servings"`
	EstimatedCost float64   `db:"estimated_cost" json:"estimated_cost"`
	ActualCost    *float64  `db:"actual_cost" json:"actual_cost,omitempty"`
	IsCooked      bool      `db:"is_cooked" json:"is_cooked"`
	Rating        *int      `db:"rating" json:"rating,omitempty"`
}

// Substitution records one cost-saving ingredient swap applied during plan
// optimization.
type Substitution struct {
	MealID     string  `json:"meal_id"`
	Original   string  `json:"original"`
	Substitute string  `json:"substitute"`
	Saved      float64 `json:"saved"`
}

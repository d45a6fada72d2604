package dto

import (
	"time"

	"app/internal/model"
)

// MealPlanGenerateRequest is the payload for budget meal-plan generation.
type MealPlanGenerateRequest struct {
	Name                string   `json:"name" validate:"required"`
	WeeklyBudget        float64  `json:"weekly_budget" validate:"required,gt=0"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// MealPlanResponseDTO is returned in API responses.
type MealPlanResponseDTO struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	WeekStart    time.Time           `json:"week_start"`
	WeeklyBudget float64             `json:"weekly_budget"`
	ActualCost   string              `json:"actual_cost"`
	IsActive     bool                `json:"is_active"`
	CreatedAt    time.Time           `json:"created_at"`
	Meals        []model.PlannedMeal `json:"meals,omitempty"`
}

// MealPlanGenerateResponseDTO adds the derived cost figures to the plan.
type MealPlanGenerateResponseDTO struct {
	MealPlanResponseDTO
	TotalCost float64 `json:"total_cost"`
	Savings   float64 `json:"savings"`
}

// MealPlanOptimizeResponseDTO reports the result of an optimization pass.
type MealPlanOptimizeResponseDTO struct {
	Meals         []model.PlannedMeal  `json:"meals"`
	TotalSaved    float64              `json:"total_saved"`
	Substitutions []model.Substitution `json:"substitutions"`
}

// FromMealPlan maps a domain meal plan to its response DTO.
func FromMealPlan(plan *model.MealPlan, meals []model.PlannedMeal) MealPlanResponseDTO {
	return MealPlanResponseDTO{
		ID:           plan.ID,
		Name:         plan.Name,
		WeekStart:    plan.WeekStart,
		WeeklyBudget: plan.WeeklyBudget,
		ActualCost:   plan.ActualCost,
		IsActive:     plan.IsActive,
		CreatedAt:    plan.CreatedAt,
		Meals:        meals,
	}
}

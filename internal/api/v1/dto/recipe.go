package dto

import (
	"time"

	"app/internal/model"
)

// RecipeGenerateRequest is the payload for recipe synthesis.
type RecipeGenerateRequest struct {
	Ingredients         []string `json:"ingredients" validate:"required,min=1,dive,required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// RecipeUpdateDTO updates the only mutable recipe fields.
type RecipeUpdateDTO struct {
	IsSaved bool    `json:"is_saved"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

// RecipeResponseDTO is returned in API responses.
type RecipeResponseDTO struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Ingredients     []model.Ingredient  `json:"ingredients"`
	Instructions    []model.Instruction `json:"instructions"`
	CookTimeMinutes int                 `json:"cook_time_minutes"`
	Servings        int                 `json:"servings"`
	Difficulty      string              `json:"difficulty"`
	Rating          float64             `json:"rating"`
	IsSaved         bool                `json:"is_saved"`
	ImageURL        string              `json:"image_url"`
	CreatedAt       time.Time           `json:"created_at"`
}

// FromRecipe maps a domain recipe to its response DTO.
func FromRecipe(rec *model.Recipe) RecipeResponseDTO {
	return RecipeResponseDTO{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		Ingredients:     rec.Ingredients,
		Instructions:    rec.Instructions,
		CookTimeMinutes: rec.CookTimeMinutes,
		Servings:        rec.Servings,
		Difficulty:      rec.Difficulty,
		Rating:          rec.Rating,
		IsSaved:         rec.IsSaved,
		ImageURL:        rec.ImageURL,
		CreatedAt:       rec.CreatedAt,
	}
}

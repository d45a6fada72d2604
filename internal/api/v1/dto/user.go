package dto

import "time"

// UserCreateDTO is used for incoming create requests
type UserCreateDTO struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	UserID              string    `json:"user_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Tier                string    `json:"tier"`
	MonthlyRecipeCount  int       `json:"monthly_recipe_count"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DietaryRestrictionsUpdateDTO replaces the user's restriction tags.
type DietaryRestrictionsUpdateDTO struct {
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"required"`
}

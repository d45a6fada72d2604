package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipeRepository stores synthesized recipes. Ingredient and instruction
// lists are persisted as jsonb columns.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, rec *model.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error)
	GetRecipesByUserID(ctx context.Context, userID string) ([]model.Recipe, error)
	GetRecipesByIDs(ctx context.Context, ids []string) ([]model.Recipe, error)
	UpdateSavedAndRating(ctx context.Context, id string, isSaved bool, rating float64) error
	DeleteRecipe(ctx context.Context, id string) error
}

type recipeRepo struct {
	pool *pgxpool.Pool
}

// NewRecipeRepo creates a new RecipeRepository.
func NewRecipeRepo(pool *pgxpool.Pool) RecipeRepository {
	return &recipeRepo{pool: pool}
}

const recipeColumns = `id, user_id, title, description, ingredients, instructions,
       cook_time_minutes, servings, difficulty, rating, is_saved, image_url, created_at`

func (r *recipeRepo) CreateRecipe(ctx context.Context, rec *model.Recipe) error {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(rec.Instructions)
	if err != nil {
		return fmt.Errorf("marshal instructions: %w", err)
	}
	const q = `
        INSERT INTO recipes (id, user_id, title, description, ingredients, instructions,
                             cook_time_minutes, servings, difficulty, rating, is_saved, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, $11)
        RETURNING created_at
    `
	err = r.pool.QueryRow(ctx, q,
		rec.ID, rec.UserID, rec.Title, rec.Description, ingredients, instructions,
		rec.CookTimeMinutes, rec.Servings, rec.Difficulty, rec.Rating, rec.ImageURL,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating recipe %s: %w", rec.Title, err)
	}
	return nil
}

func (r *recipeRepo) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	const q = `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	rec, err := scanRecipe(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch recipe %s: %w", id, err)
	}
	return rec, nil
}

// GetRecipesByUserID returns the user's recipe library in insertion order.
func (r *recipeRepo) GetRecipesByUserID(ctx context.Context, userID string) ([]model.Recipe, error) {
	const q = `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes for user %s: %w", userID, err)
	}
	defer rows.Close()
	return collectRecipes(rows)
}

func (r *recipeRepo) GetRecipesByIDs(ctx context.Context, ids []string) ([]model.Recipe, error) {
	const q = `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ANY($1) ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("list recipes by ids: %w", err)
	}
	defer rows.Close()
	return collectRecipes(rows)
}

func (r *recipeRepo) UpdateSavedAndRating(ctx context.Context, id string, isSaved bool, rating float64) error {
	const q = `UPDATE recipes SET is_saved = $2, rating = $3 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id, isSaved, rating); err != nil {
		return fmt.Errorf("update recipe %s: %w", id, err)
	}
	return nil
}

func (r *recipeRepo) DeleteRecipe(ctx context.Context, id string) error {
	const q = `DELETE FROM recipes WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	return nil
}

func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var rec model.Recipe
	var rawIngredients, rawInstructions []byte
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Description,
		&rawIngredients,
		&rawInstructions,
		&rec.CookTimeMinutes,
		&rec.Servings,
		&rec.Difficulty,
		&rec.Rating,
		&rec.IsSaved,
		&rec.ImageURL,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawIngredients, &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients for recipe %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(rawInstructions, &rec.Instructions); err != nil {
		return nil, fmt.Errorf("unmarshal instructions for recipe %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func collectRecipes(rows pgx.Rows) ([]model.Recipe, error) {
	var recipes []model.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollectionRepository stores recipe collections and their membership.
type CollectionRepository interface {
	CreateCollection(ctx context.Context, c *model.Collection) error
	GetCollectionByID(ctx context.Context, id string) (*model.Collection, error)
	GetCollectionsByUserID(ctx context.Context, userID string) ([]model.Collection, error)
	UpdateCollection(ctx context.Context, id, name, description string) error
	DeleteCollection(ctx context.Context, id string) error
	AddRecipe(ctx context.Context, collectionID, recipeID string) error
	RemoveRecipe(ctx context.Context, collectionID, recipeID string) error
	GetRecipeIDs(ctx context.Context, collectionID string) ([]string, error)
}

type collectionRepo struct {
	pool *pgxpool.Pool
}

// NewCollectionRepo creates a new CollectionRepository.
func NewCollectionRepo(pool *pgxpool.Pool) CollectionRepository {
	return &collectionRepo{pool: pool}
}

func (r *collectionRepo) CreateCollection(ctx context.Context, c *model.Collection) error {
	const q = `
        INSERT INTO collections (id, user_id, name, description)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `
	if err := r.pool.QueryRow(ctx, q, c.ID, c.UserID, c.Name, c.Description).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("creating collection %s: %w", c.Name, err)
	}
	return nil
}

func (r *collectionRepo) GetCollectionByID(ctx context.Context, id string) (*model.Collection, error) {
	const q = `SELECT id, user_id, name, description, created_at, updated_at FROM collections WHERE id = $1`
	var c model.Collection
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch collection %s: %w", id, err)
	}
	return &c, nil
}

func (r *collectionRepo) GetCollectionsByUserID(ctx context.Context, userID string) ([]model.Collection, error) {
	const q = `SELECT id, user_id, name, description, created_at, updated_at FROM collections WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections for user %s: %w", userID, err)
	}
	defer rows.Close()

	var collections []model.Collection
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}
	return collections, nil
}

func (r *collectionRepo) UpdateCollection(ctx context.Context, id, name, description string) error {
	const q = `UPDATE collections SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id, name, description); err != nil {
		return fmt.Errorf("update collection %s: %w", id, err)
	}
	return nil
}

func (r *collectionRepo) DeleteCollection(ctx context.Context, id string) error {
	const q = `DELETE FROM collections WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete collection %s: %w", id, err)
	}
	return nil
}

func (r *collectionRepo) AddRecipe(ctx context.Context, collectionID, recipeID string) error {
	const q = `
        INSERT INTO collection_recipes (collection_id, recipe_id)
        VALUES ($1, $2)
        ON CONFLICT (collection_id, recipe_id) DO NOTHING
    `
	if _, err := r.pool.Exec(ctx, q, collectionID, recipeID); err != nil {
		return fmt.Errorf("add recipe %s to collection %s: %w", recipeID, collectionID, err)
	}
	return nil
}

func (r *collectionRepo) RemoveRecipe(ctx context.Context, collectionID, recipeID string) error {
	const q = `DELETE FROM collection_recipes WHERE collection_id = $1 AND recipe_id = $2`
	if _, err := r.pool.Exec(ctx, q, collectionID, recipeID); err != nil {
		return fmt.Errorf("remove recipe %s from collection %s: %w", recipeID, collectionID, err)
	}
	return nil
}

func (r *collectionRepo) GetRecipeIDs(ctx context.Context, collectionID string) ([]string, error) {
	const q = `SELECT recipe_id FROM collection_recipes WHERE collection_id = $1`
	rows, err := r.pool.Query(ctx, q, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list recipes for collection %s: %w", collectionID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan collection recipe id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection recipes: %w", err)
	}
	return ids, nil
}

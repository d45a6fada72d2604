package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PantryRepository stores pantry items.
type PantryRepository interface {
	CreateItem(ctx context.Context, item *model.PantryItem) error
	GetItemByID(ctx context.Context, id string) (*model.PantryItem, error)
	GetItemsByUserID(ctx context.Context, userID string) ([]model.PantryItem, error)
	UpdateItem(ctx context.Context, item *model.PantryItem) error
	DeleteItem(ctx context.Context, id string) error
}

type pantryRepo struct {
	pool *pgxpool.Pool
}

// NewPantryRepo creates a new PantryRepository.
func NewPantryRepo(pool *pgxpool.Pool) PantryRepository {
	return &pantryRepo{pool: pool}
}

func (r *pantryRepo) CreateItem(ctx context.Context, item *model.PantryItem) error {
	const q = `
        INSERT INTO pantry_items (id, user_id, name, quantity, unit, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.ExpiresAt).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating pantry item %s: %w", item.Name, err)
	}
	return nil
}

func (r *pantryRepo) GetItemByID(ctx context.Context, id string) (*model.PantryItem, error) {
	const q = `SELECT id, user_id, name, quantity, unit, expires_at, created_at, updated_at FROM pantry_items WHERE id = $1`
	var it model.PantryItem
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.Unit, &it.ExpiresAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch pantry item %s: %w", id, err)
	}
	return &it, nil
}

func (r *pantryRepo) GetItemsByUserID(ctx context.Context, userID string) ([]model.PantryItem, error) {
	const q = `SELECT id, user_id, name, quantity, unit, expires_at, created_at, updated_at FROM pantry_items WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list pantry items for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []model.PantryItem
	for rows.Next() {
		var it model.PantryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.Unit, &it.ExpiresAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pantry items: %w", err)
	}
	return items, nil
}

func (r *pantryRepo) UpdateItem(ctx context.Context, item *model.PantryItem) error {
	const q = `
        UPDATE pantry_items SET name = $2, quantity = $3, unit = $4, expires_at = $5, updated_at = NOW()
        WHERE id = $1
    `
	if _, err := r.pool.Exec(ctx, q, item.ID, item.Name, item.Quantity, item.Unit, item.ExpiresAt); err != nil {
		return fmt.Errorf("update pantry item %s: %w", item.ID, err)
	}
	return nil
}

func (r *pantryRepo) DeleteItem(ctx context.Context, id string) error {
	const q = `DELETE FROM pantry_items WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete pantry item %s: %w", id, err)
	}
	return nil
}

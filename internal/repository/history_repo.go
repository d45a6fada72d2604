package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository stores cooking history entries.
type HistoryRepository interface {
	CreateEntry(ctx context.Context, h *model.CookingHistory) error
	GetEntryByID(ctx context.Context, id string) (*model.CookingHistory, error)
	GetEntriesByUserID(ctx context.Context, userID string, limit, offset int) ([]model.CookingHistory, error)
	DeleteEntry(ctx context.Context, id string) error
}

type historyRepo struct {
	pool *pgxpool.Pool
}

// NewHistoryRepo creates a new HistoryRepository.
func NewHistoryRepo(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepo{pool: pool}
}

func (r *historyRepo) CreateEntry(ctx context.Context, h *model.CookingHistory) error {
	const q = `
        INSERT INTO cooking_history (id, user_id, recipe_id, cooked_at, rating, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	if _, err := r.pool.Exec(ctx, q, h.ID, h.UserID, h.RecipeID, h.CookedAt, h.Rating, h.Notes); err != nil {
		return fmt.Errorf("creating cooking history entry: %w", err)
	}
	return nil
}

func (r *historyRepo) GetEntryByID(ctx context.Context, id string) (*model.CookingHistory, error) {
	const q = `SELECT id, user_id, recipe_id, cooked_at, rating, notes FROM cooking_history WHERE id = $1`
	var h model.CookingHistory
	err := r.pool.QueryRow(ctx, q, id).Scan(&h.ID, &h.UserID, &h.RecipeID, &h.CookedAt, &h.Rating, &h.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch cooking history entry %s: %w", id, err)
	}
	return &h, nil
}

func (r *historyRepo) GetEntriesByUserID(ctx context.Context, userID string, limit, offset int) ([]model.CookingHistory, error) {
	const q = `
        SELECT id, user_id, recipe_id, cooked_at, rating, notes
        FROM cooking_history WHERE user_id = $1 ORDER BY cooked_at DESC LIMIT $2 OFFSET $3
    `
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cooking history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []model.CookingHistory
	for rows.Next() {
		var h model.CookingHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.RecipeID, &h.CookedAt, &h.Rating, &h.Notes); err != nil {
			return nil, fmt.Errorf("scan cooking history entry: %w", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cooking history: %w", err)
	}
	return entries, nil
}

func (r *historyRepo) DeleteEntry(ctx context.Context, id string) error {
	const q = `DELETE FROM cooking_history WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete cooking history entry %s: %w", id, err)
	}
	return nil
}

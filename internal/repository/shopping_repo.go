package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShoppingRepository stores shopping lists and their items.
type ShoppingRepository interface {
	CreateList(ctx context.Context, list *model.ShoppingList) error
	GetListByID(ctx context.Context, id string) (*model.ShoppingList, error)
	GetListsByUserID(ctx context.Context, userID string) ([]model.ShoppingList, error)
	DeleteList(ctx context.Context, id string) error

	CreateItem(ctx context.Context, item *model.ShoppingListItem) error
	GetItems(ctx context.Context, listID string) ([]model.ShoppingListItem, error)
	GetItemByID(ctx context.Context, id string) (*model.ShoppingListItem, error)
	UpdateItemChecked(ctx context.Context, itemID string, isChecked bool) error
	DeleteItem(ctx context.Context, itemID string) error
}

type shoppingRepo struct {
	pool *pgxpool.Pool
}

// NewShoppingRepo creates a new ShoppingRepository.
func NewShoppingRepo(pool *pgxpool.Pool) ShoppingRepository {
	return &shoppingRepo{pool: pool}
}

func (r *shoppingRepo) CreateList(ctx context.Context, list *model.ShoppingList) error {
	const q = `INSERT INTO shopping_lists (id, user_id, name) VALUES ($1, $2, $3) RETURNING created_at`
	if err := r.pool.QueryRow(ctx, q, list.ID, list.UserID, list.Name).Scan(&list.CreatedAt); err != nil {
		return fmt.Errorf("creating shopping list %s: %w", list.Name, err)
	}
	return nil
}

func (r *shoppingRepo) GetListByID(ctx context.Context, id string) (*model.ShoppingList, error) {
	const q = `SELECT id, user_id, name, created_at FROM shopping_lists WHERE id = $1`
	var l model.ShoppingList
	if err := r.pool.QueryRow(ctx, q, id).Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch shopping list %s: %w", id, err)
	}
	return &l, nil
}

func (r *shoppingRepo) GetListsByUserID(ctx context.Context, userID string) ([]model.ShoppingList, error) {
	const q = `SELECT id, user_id, name, created_at FROM shopping_lists WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists for user %s: %w", userID, err)
	}
	defer rows.Close()

	var lists []model.ShoppingList
	for rows.Next() {
		var l model.ShoppingList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shopping list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shopping lists: %w", err)
	}
	return lists, nil
}

func (r *shoppingRepo) DeleteList(ctx context.Context, id string) error {
	const q = `DELETE FROM shopping_lists WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete shopping list %s: %w", id, err)
	}
	return nil
}

func (r *shoppingRepo) CreateItem(ctx context.Context, item *model.ShoppingListItem) error {
	const q = `
        INSERT INTO shopping_list_items (id, list_id, name, amount, unit, category, is_checked, recipe_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.pool.Exec(ctx, q,
		item.ID, item.ListID, item.Name, item.Amount, item.Unit, item.Category, item.IsChecked, item.RecipeID,
	)
	if err != nil {
		return fmt.Errorf("creating shopping list item %s: %w", item.Name, err)
	}
	return nil
}

func (r *shoppingRepo) GetItems(ctx context.Context, listID string) ([]model.ShoppingListItem, error) {
	const q = `
        SELECT id, list_id, name, amount, unit, category, is_checked, recipe_id
        FROM shopping_list_items WHERE list_id = $1 ORDER BY category ASC, name ASC
    `
	rows, err := r.pool.Query(ctx, q, listID)
	if err != nil {
		return nil, fmt.Errorf("list items for shopping list %s: %w", listID, err)
	}
	defer rows.Close()

	var items []model.ShoppingListItem
	for rows.Next() {
		var it model.ShoppingListItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.Name, &it.Amount, &it.Unit, &it.Category, &it.IsChecked, &it.RecipeID); err != nil {
			return nil, fmt.Errorf("scan shopping list item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shopping list items: %w", err)
	}
	return items, nil
}

func (r *shoppingRepo) GetItemByID(ctx context.Context, id string) (*model.ShoppingListItem, error) {
	const q = `
        SELECT id, list_id, name, amount, unit, category, is_checked, recipe_id
        FROM shopping_list_items WHERE id = $1
    `
	var it model.ShoppingListItem
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.ListID, &it.Name, &it.Amount, &it.Unit, &it.Category, &it.IsChecked, &it.RecipeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch shopping list item %s: %w", id, err)
	}
	return &it, nil
}

func (r *shoppingRepo) UpdateItemChecked(ctx context.Context, itemID string, isChecked bool) error {
	const q = `UPDATE shopping_list_items SET is_checked = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, itemID, isChecked); err != nil {
		return fmt.Errorf("update shopping list item %s: %w", itemID, err)
	}
	return nil
}

func (r *shoppingRepo) DeleteItem(ctx context.Context, itemID string) error {
	const q = `DELETE FROM shopping_list_items WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, itemID); err != nil {
		return fmt.Errorf("delete shopping list item %s: %w", itemID, err)
	}
	return nil
}

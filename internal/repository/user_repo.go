package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository manages user profiles, tiers and the monthly recipe counter.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error)
	UpdateDietaryRestrictions(ctx context.Context, userID string, restrictions []string) error
	UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error
	UpdateSubscription(ctx context.Context, userID, tier string, stripeSubscriptionID *string) error
	// AdvanceRecipeCount bumps the user's monthly recipe counter in a single
	// conditional UPDATE: when the stored reset timestamp falls in an earlier
	// calendar month than now, the counter restarts at 1 and the reset
	// timestamp moves to now; otherwise the counter increments.
	AdvanceRecipeCount(ctx context.Context, userID string, now time.Time) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository.
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

const userColumns = `user_id, name, email, tier, monthly_recipe_count, count_reset_at,
       dietary_restrictions, stripe_customer_id, stripe_subscription_id, created_at, updated_at`

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	const q = `
        INSERT INTO users (user_id, name, email, tier, monthly_recipe_count, count_reset_at, dietary_restrictions)
        VALUES ($1, $2, $3, 'free', 0, NOW(), $4)
        RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, q, u.UserID, u.Name, u.Email, u.DietaryRestrictions)
	if err := scanUser(row, u); err != nil {
		return fmt.Errorf("creating user %s: %w", u.UserID, err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, q, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", id, err)
	}
	return &u, nil
}

func (r *userRepo) GetUserByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE stripe_customer_id = $1`
	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, q, customerID), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user by customer %s: %w", customerID, err)
	}
	return &u, nil
}

func (r *userRepo) UpdateDietaryRestrictions(ctx context.Context, userID string, restrictions []string) error {
	const q = `UPDATE users SET dietary_restrictions = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, q, userID, restrictions); err != nil {
		return fmt.Errorf("update dietary restrictions for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepo) UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error {
	const q = `UPDATE users SET stripe_customer_id = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, q, userID, customerID); err != nil {
		return fmt.Errorf("store stripe customer id for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepo) UpdateSubscription(ctx context.Context, userID, tier string, stripeSubscriptionID *string) error {
	const q = `UPDATE users SET tier = $2, stripe_subscription_id = $3, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, q, userID, tier, stripeSubscriptionID); err != nil {
		return fmt.Errorf("update subscription for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepo) AdvanceRecipeCount(ctx context.Context, userID string, now time.Time) error {
	// Rollover and increment folded into one statement so concurrent calls
	// never interleave a read with a stale write.
	const q = `
        UPDATE users
        SET monthly_recipe_count = CASE
                WHEN count_reset_at < date_trunc('month', $2::timestamptz) THEN 1
                ELSE monthly_recipe_count + 1
            END,
            count_reset_at = CASE
                WHEN count_reset_at < date_trunc('month', $2::timestamptz) THEN $2::timestamptz
                ELSE count_reset_at
            END,
            updated_at = NOW()
        WHERE user_id = $1
    `
	if _, err := r.pool.Exec(ctx, q, userID, now); err != nil {
		return fmt.Errorf("advance recipe count for user %s: %w", userID, err)
	}
	return nil
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.Tier,
		&u.MonthlyRecipeCount,
		&u.CountResetAt,
		&u.DietaryRestrictions,
		&u.StripeCustomerID,
		&u.StripeSubscriptionID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MealPlanRepository stores weekly meal plans and their planned meal slots.
// Plan generation inserts slots one row at a time; a mid-sequence failure
// leaves a partially populated plan, which is accepted rather than rolled
// back.
type MealPlanRepository interface {
	CreateMealPlan(ctx context.Context, plan *model.MealPlan) error
	GetMealPlanByID(ctx context.Context, id string) (*model.MealPlan, error)
	GetMealPlansByUserID(ctx context.Context, userID string) ([]model.MealPlan, error)
	UpdateActualCost(ctx context.Context, planID, actualCost string) error
	DeleteMealPlan(ctx context.Context, id string) error

	CreatePlannedMeal(ctx context.Context, meal *model.PlannedMeal) error
	GetPlannedMeals(ctx context.Context, planID string) ([]model.PlannedMeal, error)
	UpdateEstimatedCost(ctx context.Context, mealID string, estimatedCost float64) error
}

type mealPlanRepo struct {
	pool *pgxpool.Pool
}

// NewMealPlanRepo creates a new MealPlanRepository.
func NewMealPlanRepo(pool *pgxpool.Pool) MealPlanRepository {
	return &mealPlanRepo{pool: pool}
}

func (r *mealPlanRepo) CreateMealPlan(ctx context.Context, plan *model.MealPlan) error {
	const q = `
        INSERT INTO meal_plans (id, user_id, name, week_start, weekly_budget, actual_cost, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q,
		plan.ID, plan.UserID, plan.Name, plan.WeekStart, plan.WeeklyBudget, plan.ActualCost, plan.IsActive,
	).Scan(&plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating meal plan %s: %w", plan.Name, err)
	}
	return nil
}

func (r *mealPlanRepo) GetMealPlanByID(ctx context.Context, id string) (*model.MealPlan, error) {
	const q = `
        SELECT id, user_id, name, week_start, weekly_budget, actual_cost, is_active, created_at
        FROM meal_plans WHERE id = $1
    `
	var p model.MealPlan
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.WeekStart, &p.WeeklyBudget, &p.ActualCost, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch meal plan %s: %w", id, err)
	}
	return &p, nil
}

func (r *mealPlanRepo) GetMealPlansByUserID(ctx context.Context, userID string) ([]model.MealPlan, error) {
	const q = `
        SELECT id, user_id, name, week_start, weekly_budget, actual_cost, is_active, created_at
        FROM meal_plans WHERE user_id = $1 ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []model.MealPlan
	for rows.Next() {
		var p model.MealPlan
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.WeekStart, &p.WeeklyBudget, &p.ActualCost, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meal plans: %w", err)
	}
	return plans, nil
}

func (r *mealPlanRepo) UpdateActualCost(ctx context.Context, planID, actualCost string) error {
	const q = `UPDATE meal_plans SET actual_cost = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, planID, actualCost); err != nil {
		return fmt.Errorf("update actual cost for plan %s: %w", planID, err)
	}
	return nil
}

func (r *mealPlanRepo) DeleteMealPlan(ctx context.Context, id string) error {
	const q = `DELETE FROM meal_plans WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete meal plan %s: %w", id, err)
	}
	return nil
}

func (r *mealPlanRepo) CreatePlannedMeal(ctx context.Context, meal *model.PlannedMeal) error {
	const q = `
        INSERT INTO planned_meals (id, plan_id, recipe_id, meal_type, scheduled_date, servings,
                                   estimated_cost, actual_cost, is_cooked, rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.pool.Exec(ctx, q,
		meal.ID, meal.PlanID, meal.RecipeID, meal.MealType, meal.ScheduledDate, meal.Servings,
		meal.EstimatedCost, meal.ActualCost, meal.IsCooked, meal.Rating,
	)
	if err != nil {
		return fmt.Errorf("creating planned meal for plan %s: %w", meal.PlanID, err)
	}
	return nil
}

func (r *mealPlanRepo) GetPlannedMeals(ctx context.Context, planID string) ([]model.PlannedMeal, error) {
	const q = `
        SELECT id, plan_id, recipe_id, meal_type, scheduled_date, servings,
               estimated_cost, actual_cost, is_cooked, rating
        FROM planned_meals WHERE plan_id = $1 ORDER BY scheduled_date ASC, meal_type ASC
    `
	rows, err := r.pool.Query(ctx, q, planID)
	if err != nil {
		return nil, fmt.Errorf("list planned meals for plan %s: %w", planID, err)
	}
	defer rows.Close()

	var meals []model.PlannedMeal
	for rows.Next() {
		var m model.PlannedMeal
		if err := rows.Scan(&m.ID, &m.PlanID, &m.RecipeID, &m.MealType, &m.ScheduledDate, &m.Servings,
			&m.EstimatedCost, &m.ActualCost, &m.IsCooked, &m.Rating); err != nil {
			return nil, fmt.Errorf("scan planned meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planned meals: %w", err)
	}
	return meals, nil
}

func (r *mealPlanRepo) UpdateEstimatedCost(ctx context.Context, mealID string, estimatedCost float64) error {
	const q = `UPDATE planned_meals SET estimated_cost = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, mealID, estimatedCost); err != nil {
		return fmt.Errorf("update estimated cost for meal %s: %w", mealID, err)
	}
	return nil
}

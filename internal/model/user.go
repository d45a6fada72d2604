package model

import "time"

// Subscription tiers. The tier gates how many recipe generations a user may
// trigger per calendar month.
const (
	TierFree    = "free"
	TierPro     = "pro"
	TierPremium = "premium"
)

// User represents a user in the system
type User struct {
	UserID               string    `db:"user_id" json:"user_id"`
	Name                 string    `db:"name" json:"name"`
	Email                string    `db:"email" json:"email"`
	Tier                 string    `db:"tier" json:"tier"`
	MonthlyRecipeCount   int       `db:"monthly_recipe_count" json:"monthly_recipe_count"`
	CountResetAt         time.Time `db:"count_reset_at" json:"count_reset_at"`
	DietaryRestrictions  []string  `db:"dietary_restrictions" json:"dietary_restrictions"`
	StripeCustomerID     *string   `db:"stripe_customer_id" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string   `db:"stripe_subscription_id" json:"stripe_subscription_id,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

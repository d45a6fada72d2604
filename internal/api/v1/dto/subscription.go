package dto

// SubscriptionCheckoutRequest initiates a Stripe Checkout session for a paid
// tier upgrade.
type SubscriptionCheckoutRequest struct {
	Tier string `json:"tier" validate:"required,oneof=pro premium"`
}

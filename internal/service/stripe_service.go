package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"app/internal/config"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	billingsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	customerpkg "github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeService manages Stripe integration: customers, checkout/portal
// sessions, and webhook-driven tier updates.
type StripeService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewStripeService initializes the Stripe key and returns the service with a
// scoped logger.
func NewStripeService(cfg *config.Config, userRepo repository.UserRepository, logger zerolog.Logger) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	lg := logger.With().Str("service", "StripeService").Logger()
	return &StripeService{cfg: cfg, userRepo: userRepo, logger: lg}
}

// TierForPriceID maps a Stripe price ID to a subscription tier. Unknown
// prices fall back to free.
func TierForPriceID(priceID, proPrice, premiumPrice string) string {
	switch priceID {
	case proPrice:
		if proPrice != "" {
			return model.TierPro
		}
	case premiumPrice:
		if premiumPrice != "" {
			return model.TierPremium
		}
	}
	return model.TierFree
}

func (s *StripeService) tierForPrice(priceID string) string {
	return TierForPriceID(priceID, s.cfg.StripePricePro, s.cfg.StripePricePremium)
}

// getUserIDFromEvent resolves a user ID from webhook metadata or the Stripe
// customer ID.
func (s *StripeService) getUserIDFromEvent(ctx context.Context, metadata map[string]string, customerID string) (string, error) {
	if userID, ok := metadata["user_id"]; ok && userID != "" {
		return userID, nil
	}
	if customerID == "" {
		return "", errors.New("cannot determine user: missing metadata and customer id")
	}
	s.logger.Warn().Str("stripe_customer_id", customerID).Msg("Missing user_id metadata; looking up user by customer ID")
	u, err := s.userRepo.GetUserByStripeCustomerID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("failed to lookup user by Stripe customer ID: %w", err)
	}
	if u == nil {
		return "", fmt.Errorf("no user found for customer ID: %s", customerID)
	}
	return u.UserID, nil
}

// GetOrCreateCustomer ensures a Stripe Customer exists for a user.
func (s *StripeService) GetOrCreateCustomer(ctx context.Context, user *model.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}
	s.logger.Warn().Str("user_id", user.UserID).Msg("No Stripe customer ID found, creating customer")
	return s.CreateCustomer(ctx, user)
}

// CreateCustomer creates a new Stripe customer for a user.
func (s *StripeService) CreateCustomer(ctx context.Context, user *model.User) (string, error) {
	params := &stripe.CustomerParams{
		Email:    stripe.String(user.Email),
		Name:     stripe.String(user.Name),
		Metadata: map[string]string{"user_id": user.UserID},
	}
	cust, err := customerpkg.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Failed to create Stripe customer")
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	if err := s.userRepo.UpdateStripeCustomerID(ctx, user.UserID, cust.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Failed to store stripe customer id")
		return "", fmt.Errorf("store stripe customer id: %w", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession creates a Stripe Checkout session for the given tier.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID, tier string) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user for checkout session")
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("user not found: %s", userID)
	}
	customerID, err := s.GetOrCreateCustomer(ctx, user)
	if err != nil {
		return "", err
	}
	var priceID string
	switch tier {
	case model.TierPro:
		priceID = s.cfg.StripePricePro
	case model.TierPremium:
		priceID = s.cfg.StripePricePremium
	default:
		return "", fmt.Errorf("invalid tier: %s", tier)
	}
	sessParams := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{{Price: stripe.String(priceID), Quantity: stripe.Int64(1)}},
		Mode:               stripe.String(stripe.CheckoutSessionModeSubscription),
		SuccessURL:         stripe.String(s.cfg.StripePortalReturnURL + "?status=success"),
		CancelURL:          stripe.String(s.cfg.StripePortalReturnURL + "?status=cancel"),
		Metadata:           map[string]string{"user_id": userID},
	}
	sess, err := checkoutsession.New(sessParams)
	if err != nil {
		s.logger.Error().Err(err).Str("tier", tier).Msg("Failed to create Stripe checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// CreatePortalSession creates a Stripe Customer Portal session.
func (s *StripeService) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if user == nil || user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		s.logger.Error().Str("user_id", userID).Msg("No Stripe customer ID found for user when creating portal session")
		return "", fmt.Errorf("no stripe customer for user: %s", userID)
	}
	params := &stripe.BillingPortalSessionParams{Customer: stripe.String(*user.StripeCustomerID), ReturnURL: stripe.String(s.cfg.StripePortalReturnURL)}
	sess, err := billingsession.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create Stripe billing portal session")
		return "", fmt.Errorf("create billing portal session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook processes Stripe webhook events and keeps the user's tier in
// sync with their subscription.
func (s *StripeService) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read Stripe webhook payload")
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}
	sig := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}
	s.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook received")

	ctx := r.Context()
	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			s.logger.Error().Err(err).Msg("Invalid checkout.session data")
			http.Error(w, "invalid checkout.session data", http.StatusBadRequest)
			return
		}
		userID := cs.Metadata["user_id"]
		if userID == "" {
			s.logger.Error().Msg("Missing user_id in checkout session metadata")
			http.Error(w, "missing user_id in metadata", http.StatusBadRequest)
			return
		}
		var subID *string
		priceID := ""
		if cs.Subscription != nil {
			subID = stripe.String(cs.Subscription.ID)
			if cs.Subscription.Items != nil && len(cs.Subscription.Items.Data) > 0 && cs.Subscription.Items.Data[0].Price != nil {
				priceID = cs.Subscription.Items.Data[0].Price.ID
			}
		}
		tier := s.tierForPrice(priceID)
		if err := s.userRepo.UpdateSubscription(ctx, userID, tier, subID); err != nil {
			s.logger.Error().Err(err).Msg("Failed to update tier on checkout.session.completed")
			http.Error(w, "failed to update subscription", http.StatusInternalServerError)
			return
		}

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			s.logger.Error().Err(err).Msg("Invalid customer.subscription.updated payload")
			http.Error(w, "invalid subscription data", http.StatusBadRequest)
			return
		}
		customerID := ""
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}
		userID, err := s.getUserIDFromEvent(ctx, sub.Metadata, customerID)
		if err != nil {
			s.logger.Error().Err(err).Str("subscription_id", sub.ID).Msg("Failed to determine user ID from subscription")
			http.Error(w, "failed to identify user", http.StatusInternalServerError)
			return
		}
		priceID := ""
		if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			priceID = sub.Items.Data[0].Price.ID
		}
		tier := s.tierForPrice(priceID)
		if sub.Status != stripe.SubscriptionStatusActive && sub.Status != stripe.SubscriptionStatusTrialing {
			tier = model.TierFree
		}
		if err := s.userRepo.UpdateSubscription(ctx, userID, tier, stripe.String(sub.ID)); err != nil {
			s.logger.Error().Err(err).Msg("Failed to update tier on subscription update")
			http.Error(w, "failed to update subscription", http.StatusInternalServerError)
			return
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			s.logger.Error().Err(err).Msg("Invalid customer.subscription.deleted payload")
			http.Error(w, "invalid subscription data", http.StatusBadRequest)
			return
		}
		customerID := ""
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}
		userID, err := s.getUserIDFromEvent(ctx, sub.Metadata, customerID)
		if err != nil {
			s.logger.Error().Err(err).Str("subscription_id", sub.ID).Msg("Failed to determine user ID from subscription")
			http.Error(w, "failed to identify user", http.StatusInternalServerError)
			return
		}
		if err := s.userRepo.UpdateSubscription(ctx, userID, model.TierFree, nil); err != nil {
			s.logger.Error().Err(err).Msg("Failed to downgrade user on subscription delete")
			http.Error(w, "failed to downgrade user", http.StatusInternalServerError)
			return
		}

	default:
		s.logger.Debug().Str("event_type", string(event.Type)).Msg("Unhandled Stripe event type")
	}

	w.WriteHeader(http.StatusOK)
}

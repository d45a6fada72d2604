package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	// Gemini settings. When the API key is empty the service falls back to a
	// deterministic template synthesizer, which keeps local development and
	// demos working without a provider credential.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	// Stripe settings
	StripeSecretKey       string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret   string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripePricePro        string `envconfig:"STRIPE_PRICE_PRO"`
	StripePricePremium    string `envconfig:"STRIPE_PRICE_PREMIUM"`
	StripePortalReturnURL string `envconfig:"STRIPE_PORTAL_RETURN_URL" default:"http://localhost:3000/account"`

	// S3-compatible storage for generated recipe card images
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"recipe-images"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	// Usage limits
	FreeTierMonthlyLimit int `envconfig:"FREE_TIER_MONTHLY_LIMIT" default:"2"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

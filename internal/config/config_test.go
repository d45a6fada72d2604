package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	setRequired := func(t *testing.T) {
		t.Helper()
		t.Setenv("DB_CONNECTION_STRING", "postgres://localhost:5432/recipes")
		t.Setenv("JWT_SECRET", "secret")
	}

	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default port 8080, got %q", cfg.Port)
		}
		if cfg.Environment != "development" {
			t.Errorf("Expected default environment 'development', got %q", cfg.Environment)
		}
		if cfg.FreeTierMonthlyLimit != 2 {
			t.Errorf("Expected default free-tier limit 2, got %d", cfg.FreeTierMonthlyLimit)
		}
		if cfg.GeminiModel != "gemini-1.5-flash" {
			t.Errorf("Expected default Gemini model, got %q", cfg.GeminiModel)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "9999")
		t.Setenv("FREE_TIER_MONTHLY_LIMIT", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "9999" {
			t.Errorf("Expected port 9999, got %q", cfg.Port)
		}
		if cfg.FreeTierMonthlyLimit != 5 {
			t.Errorf("Expected free-tier limit 5, got %d", cfg.FreeTierMonthlyLimit)
		}
	})

	t.Run("MissingDBConnectionString", func(t *testing.T) {
		// t.Setenv registers the restore; Unsetenv makes the variable truly
		// absent for the required check.
		t.Setenv("DB_CONNECTION_STRING", "")
		os.Unsetenv("DB_CONNECTION_STRING")
		t.Setenv("JWT_SECRET", "secret")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for missing DB_CONNECTION_STRING, got nil")
		}
	})
}

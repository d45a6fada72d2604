package service

import (
	"testing"

	"app/internal/model"
)

func TestTierForPriceID(t *testing.T) {
	const (
		proPrice     = "price_pro_123"
		premiumPrice = "price_premium_456"
	)

	tests := []struct {
		name    string
		priceID string
		want    string
	}{
		{"ProPrice", proPrice, model.TierPro},
		{"PremiumPrice", premiumPrice, model.TierPremium},
		{"UnknownPrice", "price_other", model.TierFree},
		{"EmptyPrice", "", model.TierFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierForPriceID(tt.priceID, proPrice, premiumPrice); got != tt.want {
				t.Errorf("TierForPriceID(%q) = %q, want %q", tt.priceID, got, tt.want)
			}
		})
	}

	t.Run("UnconfiguredPricesNeverMatch", func(t *testing.T) {
		if got := TierForPriceID("", "", ""); got != model.TierFree {
			t.Errorf("Expected free tier when prices are unconfigured, got %q", got)
		}
	})
}

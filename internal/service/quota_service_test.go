package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

func TestMonthsSince(t *testing.T) {
	tests := []struct {
		name  string
		reset time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "SameMonth",
			reset: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "NextMonthIgnoresDayOfMonth",
			reset: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "YearBoundary",
			reset: time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "MultipleYears",
			reset: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			want:  24,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsSince(tt.reset, tt.now); got != tt.want {
				t.Errorf("MonthsSince(%v, %v) = %d, want %d", tt.reset, tt.now, got, tt.want)
			}
		})
	}
}

func TestEffectiveCount(t *testing.T) {
	now := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)

	t.Run("CurrentMonthKeepsCounter", func(t *testing.T) {
		user := &model.User{
			MonthlyRecipeCount: 2,
			CountResetAt:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		}
		if got := EffectiveCount(user, now); got != 2 {
			t.Errorf("Expected effective count 2, got %d", got)
		}
	})

	t.Run("OlderMonthCountsAsZero", func(t *testing.T) {
		user := &model.User{
			MonthlyRecipeCount: 2,
			CountResetAt:       time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC),
		}
		if got := EffectiveCount(user, now); got != 0 {
			t.Errorf("Expected effective count 0 after rollover, got %d", got)
		}
	})
}

func TestQuotaServiceCheckGeneration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc := NewQuotaService(newMockUserRepo(), 2, zerolog.Nop())

	t.Run("FreeBelowLimit", func(t *testing.T) {
		user := &model.User{UserID: "u1", Tier: model.TierFree, MonthlyRecipeCount: 1, CountResetAt: now}
		if err := svc.CheckGeneration(ctx, user, now); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("FreeAtLimit", func(t *testing.T) {
		user := &model.User{UserID: "u1", Tier: model.TierFree, MonthlyRecipeCount: 2, CountResetAt: now}
		err := svc.CheckGeneration(ctx, user, now)
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
		}
	})

	t.Run("FreeAtLimitAfterRollover", func(t *testing.T) {
		user := &model.User{
			UserID: "u1", Tier: model.TierFree, MonthlyRecipeCount: 2,
			CountResetAt: time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		}
		if err := svc.CheckGeneration(ctx, user, now); err != nil {
			t.Fatalf("Expected rollover to clear the gate, got %v", err)
		}
	})

	t.Run("ProNeverGated", func(t *testing.T) {
		user := &model.User{UserID: "u2", Tier: model.TierPro, MonthlyRecipeCount: 99, CountResetAt: now}
		if err := svc.CheckGeneration(ctx, user, now); err != nil {
			t.Fatalf("Expected no error for pro tier, got %v", err)
		}
	})

	t.Run("PremiumNeverGated", func(t *testing.T) {
		user := &model.User{UserID: "u3", Tier: model.TierPremium, MonthlyRecipeCount: 99, CountResetAt: now}
		if err := svc.CheckGeneration(ctx, user, now); err != nil {
			t.Fatalf("Expected no error for premium tier, got %v", err)
		}
	})
}

func TestQuotaServiceRecordGeneration(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewQuotaService(repo, 2, zerolog.Nop())

	april := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)

	repo.CreateUser(ctx, &model.User{UserID: "u1", Tier: model.TierFree, MonthlyRecipeCount: 2, CountResetAt: april})

	t.Run("RolloverRestartsAtOne", func(t *testing.T) {
		if err := svc.RecordGeneration(ctx, "u1", may); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		u, _ := repo.GetUserByID(ctx, "u1")
		if u.MonthlyRecipeCount != 1 {
			t.Errorf("Expected counter restart at 1, got %d", u.MonthlyRecipeCount)
		}
		if !u.CountResetAt.Equal(may) {
			t.Errorf("Expected reset timestamp to advance to %v, got %v", may, u.CountResetAt)
		}
	})

	t.Run("SameMonthIncrements", func(t *testing.T) {
		if err := svc.RecordGeneration(ctx, "u1", may.AddDate(0, 0, 1)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		u, _ := repo.GetUserByID(ctx, "u1")
		if u.MonthlyRecipeCount != 2 {
			t.Errorf("Expected counter 2, got %d", u.MonthlyRecipeCount)
		}
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ErrQuotaExceeded is returned when a free-tier user has used up their
// monthly recipe generations. Handlers surface it as a distinct outcome so
// the client can prompt an upgrade instead of showing a generic failure.
var ErrQuotaExceeded = errors.New("quota_exceeded")

// QuotaService gates recipe generation for free-tier users against a monthly
// counter with calendar-based rollover.
type QuotaService interface {
	// CheckGeneration returns ErrQuotaExceeded when the user may not trigger
	// another generation. Tiers other than free are never gated.
	CheckGeneration(ctx context.Context, user *model.User, now time.Time) error
	// RecordGeneration advances the counter after a successful generation.
	RecordGeneration(ctx context.Context, userID string, now time.Time) error
}

type quotaService struct {
	userRepo     repository.UserRepository
	monthlyLimit int
	logger       zerolog.Logger
}

// NewQuotaService creates a QuotaService with the given free-tier monthly limit.
func NewQuotaService(userRepo repository.UserRepository, monthlyLimit int, logger zerolog.Logger) QuotaService {
	return &quotaService{
		userRepo:     userRepo,
		monthlyLimit: monthlyLimit,
		logger:       logger.With().Str("service", "QuotaService").Logger(),
	}
}

// MonthsSince returns the whole-calendar-month difference between reset and
// now: (yearDelta)*12 + (monthDelta). Day-of-month is ignored.
func MonthsSince(reset, now time.Time) int {
	return (now.Year()-reset.Year())*12 + int(now.Month()) - int(reset.Month())
}

// EffectiveCount is the counter value used for the gating decision. A stored
// counter from an earlier calendar month counts as zero.
func EffectiveCount(user *model.User, now time.Time) int {
	if MonthsSince(user.CountResetAt, now) >= 1 {
		return 0
	}
	return user.MonthlyRecipeCount
}

func (s *quotaService) CheckGeneration(_ context.Context, user *model.User, now time.Time) error {
	if user.Tier != model.TierFree {
		return nil
	}
	if EffectiveCount(user, now) >= s.monthlyLimit {
		s.logger.Info().Str("user_id", user.UserID).Int("count", user.MonthlyRecipeCount).Msg("Free-tier generation limit reached")
		return ErrQuotaExceeded
	}
	return nil
}

func (s *quotaService) RecordGeneration(ctx context.Context, userID string, now time.Time) error {
	if err := s.userRepo.AdvanceRecipeCount(ctx, userID, now); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to advance recipe count")
		return fmt.Errorf("recording generation for user %s: %w", userID, err)
	}
	return nil
}

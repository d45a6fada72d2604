package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

var ErrHistoryNotFound = errors.New("cooking history entry not found")

// HistoryService records and lists cooks of a user's recipes.
type HistoryService interface {
	Record(ctx context.Context, userID, recipeID string, cookedAt time.Time, rating *int, notes string) (*model.CookingHistory, error)
	List(ctx context.Context, userID string, limit, offset int) ([]model.CookingHistory, error)
	Delete(ctx context.Context, entryID, userID string) error
}

type historyService struct {
	historyRepo repository.HistoryRepository
	recipeRepo  repository.RecipeRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository, recipeRepo repository.RecipeRepository) HistoryService {
	return &historyService{historyRepo: historyRepo, recipeRepo: recipeRepo}
}

func (s *historyService) Record(ctx context.Context, userID, recipeID string, cookedAt time.Time, rating *int, notes string) (*model.CookingHistory, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	if recipe == nil || recipe.UserID != userID {
		return nil, ErrRecipeNotFound
	}
	if cookedAt.IsZero() {
		cookedAt = time.Now()
	}
	entry := &model.CookingHistory{
		ID:       uuid.NewString(),
		UserID:   userID,
		RecipeID: recipeID,
		CookedAt: cookedAt,
		Rating:   rating,
		Notes:    notes,
	}
	if err := s.historyRepo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording cook: %w", err)
	}
	return entry, nil
}

func (s *historyService) List(ctx context.Context, userID string, limit, offset int) ([]model.CookingHistory, error) {
	entries, err := s.historyRepo.GetEntriesByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing cooking history: %w", err)
	}
	return entries, nil
}

func (s *historyService) Delete(ctx context.Context, entryID, userID string) error {
	entry, err := s.historyRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("getting cooking history entry: %w", err)
	}
	if entry == nil {
		return ErrHistoryNotFound
	}
	if entry.UserID != userID {
		return ErrUnauthorized
	}
	if err := s.historyRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("deleting cooking history entry: %w", err)
	}
	return nil
}

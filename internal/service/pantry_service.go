package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

var ErrPantryItemNotFound = errors.New("pantry item not found")

// PantryService manages a user's tracked pantry inventory.
type PantryService interface {
	Create(ctx context.Context, item *model.PantryItem) (*model.PantryItem, error)
	List(ctx context.Context, userID string) ([]model.PantryItem, error)
	Update(ctx context.Context, itemID, userID string, item *model.PantryItem) (*model.PantryItem, error)
	Delete(ctx context.Context, itemID, userID string) error
}

type pantryService struct {
	pantryRepo repository.PantryRepository
}

func NewPantryService(pantryRepo repository.PantryRepository) PantryService {
	return &pantryService{pantryRepo: pantryRepo}
}

func (s *pantryService) Create(ctx context.Context, item *model.PantryItem) (*model.PantryItem, error) {
	item.ID = uuid.NewString()
	if err := s.pantryRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("creating pantry item: %w", err)
	}
	return item, nil
}

func (s *pantryService) List(ctx context.Context, userID string) ([]model.PantryItem, error) {
	items, err := s.pantryRepo.GetItemsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pantry items: %w", err)
	}
	return items, nil
}

func (s *pantryService) Update(ctx context.Context, itemID, userID string, item *model.PantryItem) (*model.PantryItem, error) {
	existing, err := s.owned(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	existing.Name = item.Name
	existing.Quantity = item.Quantity
	existing.Unit = item.Unit
	existing.ExpiresAt = item.ExpiresAt
	if err := s.pantryRepo.UpdateItem(ctx, existing); err != nil {
		return nil, fmt.Errorf("updating pantry item: %w", err)
	}
	return existing, nil
}

func (s *pantryService) Delete(ctx context.Context, itemID, userID string) error {
	if _, err := s.owned(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.pantryRepo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("deleting pantry item: %w", err)
	}
	return nil
}

func (s *pantryService) owned(ctx context.Context, itemID, userID string) (*model.PantryItem, error) {
	item, err := s.pantryRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("getting pantry item: %w", err)
	}
	if item == nil {
		return nil, ErrPantryItemNotFound
	}
	if item.UserID != userID {
		return nil, ErrUnauthorized
	}
	return item, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

var ErrCollectionNotFound = errors.New("collection not found")

// CollectionService manages named recipe groupings.
type CollectionService interface {
	Create(ctx context.Context, userID, name, description string) (*model.Collection, error)
	List(ctx context.Context, userID string) ([]model.Collection, error)
	Get(ctx context.Context, collectionID, userID string) (*model.Collection, []string, error)
	Update(ctx context.Context, collectionID, userID, name, description string) (*model.Collection, error)
	Delete(ctx context.Context, collectionID, userID string) error
	AddRecipe(ctx context.Context, collectionID, recipeID, userID string) error
	RemoveRecipe(ctx context.Context, collectionID, recipeID, userID string) error
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
	recipeRepo     repository.RecipeRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository, recipeRepo repository.RecipeRepository) CollectionService {
	return &collectionService{collectionRepo: collectionRepo, recipeRepo: recipeRepo}
}

func (s *collectionService) Create(ctx context.Context, userID, name, description string) (*model.Collection, error) {
	c := &model.Collection{ID: uuid.NewString(), UserID: userID, Name: name, Description: description}
	if err := s.collectionRepo.CreateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}
	return c, nil
}

func (s *collectionService) List(ctx context.Context, userID string) ([]model.Collection, error) {
	collections, err := s.collectionRepo.GetCollectionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return collections, nil
}

func (s *collectionService) Get(ctx context.Context, collectionID, userID string) (*model.Collection, []string, error) {
	c, err := s.owned(ctx, collectionID, userID)
	if err != nil {
		return nil, nil, err
	}
	recipeIDs, err := s.collectionRepo.GetRecipeIDs(ctx, collectionID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing collection recipes: %w", err)
	}
	return c, recipeIDs, nil
}

func (s *collectionService) Update(ctx context.Context, collectionID, userID, name, description string) (*model.Collection, error) {
	c, err := s.owned(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.collectionRepo.UpdateCollection(ctx, collectionID, name, description); err != nil {
		return nil, fmt.Errorf("updating collection: %w", err)
	}
	c.Name = name
	c.Description = description
	return c, nil
}

func (s *collectionService) Delete(ctx context.Context, collectionID, userID string) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	if err := s.collectionRepo.DeleteCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

func (s *collectionService) AddRecipe(ctx context.Context, collectionID, recipeID, userID string) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	recipe, err := s.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("getting recipe: %w", err)
	}
	if recipe == nil || recipe.UserID != userID {
		return ErrRecipeNotFound
	}
	if err := s.collectionRepo.AddRecipe(ctx, collectionID, recipeID); err != nil {
		return fmt.Errorf("adding recipe to collection: %w", err)
	}
	return nil
}

func (s *collectionService) RemoveRecipe(ctx context.Context, collectionID, recipeID, userID string) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	if err := s.collectionRepo.RemoveRecipe(ctx, collectionID, recipeID); err != nil {
		return fmt.Errorf("removing recipe from collection: %w", err)
	}
	return nil
}

func (s *collectionService) owned(ctx context.Context, collectionID, userID string) (*model.Collection, error) {
	c, err := s.collectionRepo.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}
	if c == nil {
		return nil, ErrCollectionNotFound
	}
	if c.UserID != userID {
		return nil, ErrUnauthorized
	}
	return c, nil
}

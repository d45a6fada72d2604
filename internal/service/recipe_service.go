package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/llm"
	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrNoIngredients  = errors.New("no ingredients provided")
)

// RecipeService synthesizes recipes through the configured LLM and manages
// the user's recipe library.
type RecipeService interface {
	// Generate runs the quota gate, synthesizes recipes from the ingredient
	// list, persists them, and advances the quota counter on success.
	Generate(ctx context.Context, userID string, ingredients, restrictions []string) ([]model.Recipe, error)
	List(ctx context.Context, userID string) ([]model.Recipe, error)
	Get(ctx context.Context, recipeID, userID string) (*model.Recipe, error)
	UpdateSavedAndRating(ctx context.Context, recipeID, userID string, isSaved bool, rating float64) (*model.Recipe, error)
	Delete(ctx context.Context, recipeID, userID string) error
}

type recipeService struct {
	recipeRepo  repository.RecipeRepository
	userRepo    repository.UserRepository
	quotaSvc    QuotaService
	synthesizer llm.Synthesizer
	imageSvc    ImageService
	logger      zerolog.Logger
}

// NewRecipeService creates a RecipeService. imageSvc may be nil when no
// object storage is configured; generated recipes then keep an empty image
// URL.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
	quotaSvc QuotaService,
	synthesizer llm.Synthesizer,
	imageSvc ImageService,
	logger zerolog.Logger,
) RecipeService {
	return &recipeService{
		recipeRepo:  recipeRepo,
		userRepo:    userRepo,
		quotaSvc:    quotaSvc,
		synthesizer: synthesizer,
		imageSvc:    imageSvc,
		logger:      logger.With().Str("service", "RecipeService").Logger(),
	}
}

func (s *recipeService) Generate(ctx context.Context, userID string, ingredients, restrictions []string) ([]model.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	if err := s.quotaSvc.CheckGeneration(ctx, user, now); err != nil {
		return nil, err
	}

	drafts, err := s.synthesizer.Synthesize(ctx, ingredients, restrictions)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Recipe synthesis failed")
		return nil, fmt.Errorf("synthesizing recipes: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(drafts))
	for _, d := range drafts {
		rec := draftToRecipe(d, userID)

		// Image generation is optional; a failure must not fail the recipe.
		if s.imageSvc != nil {
			if url, imgErr := s.imageSvc.UploadRecipeCard(ctx, rec.ID, rec.Title); imgErr == nil {
				rec.ImageURL = url
			}
		}

		if err := s.recipeRepo.CreateRecipe(ctx, &rec); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Str("title", rec.Title).Msg("Failed to persist recipe")
			return nil, fmt.Errorf("persisting recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}

	if err := s.quotaSvc.RecordGeneration(ctx, userID, now); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) List(ctx context.Context, userID string) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.GetRecipesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

func (s *recipeService) Get(ctx context.Context, recipeID, userID string) (*model.Recipe, error) {
	rec, err := s.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	if rec == nil {
		return nil, ErrRecipeNotFound
	}
	if rec.UserID != userID {
		return nil, ErrUnauthorized
	}
	return rec, nil
}

func (s *recipeService) UpdateSavedAndRating(ctx context.Context, recipeID, userID string, isSaved bool, rating float64) (*model.Recipe, error) {
	rec, err := s.Get(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.UpdateSavedAndRating(ctx, recipeID, isSaved, rating); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", recipeID).Msg("Failed to update recipe")
		return nil, fmt.Errorf("updating recipe: %w", err)
	}
	rec.IsSaved = isSaved
	rec.Rating = rating
	return rec, nil
}

func (s *recipeService) Delete(ctx context.Context, recipeID, userID string) error {
	if _, err := s.Get(ctx, recipeID, userID); err != nil {
		return err
	}
	if err := s.recipeRepo.DeleteRecipe(ctx, recipeID); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", recipeID).Msg("Failed to delete recipe")
		return fmt.Errorf("deleting recipe: %w", err)
	}
	return nil
}

func draftToRecipe(d llm.RecipeDraft, userID string) model.Recipe {
	ingredients := make([]model.Ingredient, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		ingredients = append(ingredients, model.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	instructions := make([]model.Instruction, 0, len(d.Instructions))
	for _, ins := range d.Instructions {
		instructions = append(instructions, model.Instruction{Step: ins.Step, Text: ins.Text, DurationMinutes: ins.Duration})
	}
	difficulty := d.Difficulty
	switch difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		difficulty = model.DifficultyMedium
	}
	return model.Recipe{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           d.Title,
		Description:     d.Description,
		Ingredients:     ingredients,
		Instructions:    instructions,
		CookTimeMinutes: d.CookTime,
		Servings:        d.Servings,
		Difficulty:      difficulty,
		Rating:          d.Rating,
	}
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type RecipeService struct {
	repo   ports.RecipeRepository
	tx     ports.Transactor
	logger zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, tx ports.Transactor, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, tx: tx, logger: logger}
}

// ListRecipes returns the recipes owned by userID.
func (s *RecipeService) ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	recipes, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}

// CreateRecipe validates the input and persists a recipe owned by in.UserID.
func (s *RecipeService) CreateRecipe(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	recipe, err := domain.NewRecipe(domain.RecipeDraft{
		Title:             in.Title,
		Instructions:      in.Instructions,
		MinutesToComplete: in.MinutesToComplete,
		UserID:            in.UserID,
	})
	if err != nil {
		return nil, err
	}

	var created *domain.Recipe
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Insert(ctx, recipe)
		return err
	})
	if err != nil {
		if _, ok := domain.AsValidation(err); !ok {
			s.logger.Error().Err(err).Int64("user_id", in.UserID).Msg("failed to create recipe")
		}
		return nil, err
	}

	s.logger.Info().Int64("recipe_id", created.ID).Int64("user_id", created.UserID).Msg("recipe created")
	return created, nil
}

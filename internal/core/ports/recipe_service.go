package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// CreateRecipeInput carries the fields of a new recipe. UserID always comes
// from the authenticated session, never from the request body.
type CreateRecipeInput struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
	UserID            int64
}

// RecipeService defines use-case operations for recipes.
type RecipeService interface {
	ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error)
	CreateRecipe(ctx context.Context, in CreateRecipeInput) (*domain.Recipe, error)
}

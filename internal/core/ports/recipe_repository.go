package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	// ListByOwner returns every recipe whose owner is userID, ordered by ID.
	ListByOwner(ctx context.Context, userID int64) ([]domain.Recipe, error)
	// Insert persists recipe. A reference to a missing owner yields a
	// *domain.ValidationError.
	Insert(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
}

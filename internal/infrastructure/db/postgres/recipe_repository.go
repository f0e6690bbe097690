package postgres

import (
	"context"
	"fmt"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeRepository implements ports.RecipeRepository on PostgreSQL.
type RecipeRepository struct {
	db *DB
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	query :=
		`SELECT id, title, instructions, minutes_to_complete, user_id, created_at
		 FROM recipes WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Recipe, 0)
	for rows.Next() {
		var rec domain.Recipe
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Instructions, &rec.MinutesToComplete, &rec.UserID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

func (r *RecipeRepository) Insert(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	query :=
		`INSERT INTO recipes (title, instructions, minutes_to_complete, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	created := *recipe
	err := r.db.conn(ctx).QueryRowContext(ctx, query,
		recipe.Title, recipe.Instructions, recipe.MinutesToComplete, recipe.UserID, recipe.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		if isConstraintViolation(err, codeForeignKeyViolation, constraintRecipeOwner) {
			return nil, domain.NewValidationError("user_id", "Recipe owner does not exist")
		}
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return &created, nil
}

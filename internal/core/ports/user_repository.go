package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches exactly.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Insert persists user and returns it with its assigned ID. A username
	// collision yields domain.ErrUsernameTaken.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}

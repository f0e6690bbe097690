package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to AuthService.Signup.
type SignupInput struct {
	Username string
	Password string
	Bio      *string
	ImageURL *string
}

// LoginInput carries credentials plus the key used for attempt throttling.
type LoginInput struct {
	Username  string
	Password  string
	ClientKey string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

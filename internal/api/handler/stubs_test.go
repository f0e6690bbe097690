package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn      func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn       func(ctx context.Context, in ports.LoginInput) (*domain.User, error)
	currentUserFn func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

type stubRecipeService struct {
	listFn   func(ctx context.Context, userID int64) ([]domain.Recipe, error)
	createFn func(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error)
}

func (s *stubRecipeService) ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return s.listFn(ctx, userID)
}

func (s *stubRecipeService) CreateRecipe(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	return s.createFn(ctx, in)
}

// stubSessions records what the handlers bind to the session.
type stubSessions struct {
	loggedIn  int64
	loggedOut bool
}

func (s *stubSessions) UserID(echo.Context) (int64, bool, error) {
	return s.loggedIn, s.loggedIn > 0, nil
}

func (s *stubSessions) Login(_ echo.Context, userID int64) error {
	s.loggedIn = userID
	return nil
}

func (s *stubSessions) Logout(echo.Context) error {
	s.loggedIn = 0
	s.loggedOut = true
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// AuthService implements signup, login and session user resolution.
type AuthService struct {
	users   ports.UserRepository
	tx      ports.Transactor
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires an AuthService. A nil limiter disables login
// throttling.
func NewAuthService(users ports.UserRepository, tx ports.Transactor, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	return &AuthService{users: users, tx: tx, limiter: limiter, log: log}
}

// Signup validates and persists a new user. Returns a *domain.ValidationError
// for bad input and domain.ErrUsernameTaken when the username is in use.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	user, err := domain.NewUser(in.Username, in.Bio, in.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	var created *domain.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.users.FindByUsername(ctx, user.Username)
		switch {
		case err == nil:
			return domain.ErrUsernameTaken
		case !errors.Is(err, domain.ErrUserNotFound):
			return err
		}
		created, err = s.users.Insert(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.log.Info().Str("username", user.Username).Msg("signup rejected: username taken")
		} else if _, ok := domain.AsValidation(err); !ok {
			s.log.Error().Err(err).Str("username", user.Username).Msg("signup failed")
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	return created, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	if wait, err := s.limiter.Blocked(ctx, in.ClientKey); err != nil {
		s.log.Warn().Err(err).Str("client", in.ClientKey).Msg("login limiter check failed, continuing")
	} else if wait > 0 {
		return nil, &domain.ThrottleError{RetryAfter: wait}
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.fail(ctx, in)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Authenticate(in.Password) {
		s.fail(ctx, in)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, in.ClientKey); err != nil {
		s.log.Warn().Err(err).Str("client", in.ClientKey).Msg("failed to reset login attempts")
	}
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// CurrentUser resolves the user bound to a session.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) fail(ctx context.Context, in ports.LoginInput) {
	s.log.Info().Str("username", in.Username).Str("client", in.ClientKey).Msg("login failed")
	if err := s.limiter.Fail(ctx, in.ClientKey); err != nil {
		s.log.Warn().Err(err).Str("client", in.ClientKey).Msg("failed to record login attempt")
	}
}

type noopLimiter struct{}

func (noopLimiter) Blocked(context.Context, string) (time.Duration, error) { return 0, nil }
func (noopLimiter) Fail(context.Context, string) error                     { return nil }
func (noopLimiter) Reset(context.Context, string) error                    { return nil }

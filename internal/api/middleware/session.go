package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RequireSession resolves the session user and injects it as the request
// identity. Requests without one are rejected with ErrUnauthorized.
func RequireSession(sessions handler.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok, err := sessions.UserID(c)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUnauthorized
			}

			handler.SetIdentity(c, handler.Identity{UserID: userID})
			return next(c)
		}
	}
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

const identityKey = "identity"

// Identity is the authenticated requester resolved from the session.
type Identity struct {
	UserID int64
}

// Sessions binds and resolves the user id carried by the client session.
type Sessions interface {
	UserID(c echo.Context) (int64, bool, error)
	Login(c echo.Context, userID int64) error
	Logout(c echo.Context) error
}

// SetIdentity stores id on the request context.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// ctxIdentity returns the identity injected by the session middleware.
// Its absence means the route was mounted without it; fail closed.
func ctxIdentity(c echo.Context) (Identity, error) {
	id, ok := c.Get(identityKey).(Identity)
	if !ok || id.UserID <= 0 {
		return Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

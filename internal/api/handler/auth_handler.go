package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    Sessions
}

func NewAuthHandler(authService ports.AuthService, sessions Sessions) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type signupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates an account and logs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		return err
	}
	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// CheckSession returns the logged-in user.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /check_session [get]
func (h *AuthHandler) CheckSession(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Login authenticates by username and password and binds the session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		// A malformed body is indistinguishable from wrong credentials.
		req = loginRequest{}
	}

	user, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		ClientKey: c.RealIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout clears the session.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /logout [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

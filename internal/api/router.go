package api

import (
	"github.com/gorilla/sessions"
	echoprometheus "github.com/labstack/echo-contrib/echoprometheus"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/recipebox/recipe-api/docs"
	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/api/session"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Recipes      ports.RecipeService
	SessionStore sessions.Store
	Sessions     *session.Manager
	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handler.Pinger
	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string
	// Registry receives the HTTP metrics. Defaults to the global registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Metrics wrap the request logger, which commits the error response,
	// so the recorded code is the one sent to the client.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "recipes",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.Secure())
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     d.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	e.Use(echosession.Middleware(d.SessionStore))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	recipeHandler := handler.NewRecipeHandler(d.Recipes)
	requireSession := middleware.RequireSession(d.Sessions)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/check_session", authHandler.CheckSession, requireSession)
	e.DELETE("/logout", authHandler.Logout, requireSession)

	// --- Recipe routes ---
	recipes := e.Group("/recipes", requireSession)
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskboard/config"
	"taskboard/internal/delivery/api/middleware"
	"taskboard/internal/delivery/api/router/handler"
	"taskboard/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	SessionGate    *middleware.SessionGate
	Gatherer       prometheus.Gatherer
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	accountHandler *handler.AccountHandler
	sessionGate    *middleware.SessionGate
	gatherer       prometheus.Gatherer
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		accountHandler: params.AccountHandler,
		sessionGate:    params.SessionGate,
		gatherer:       params.Gatherer,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(metrics.Handler(r.gatherer)))
	}

	// Auth routes live at the root for compatibility with existing clients.
	e.POST("/signup", r.authHandler.Signup)
	e.POST("/signin", r.authHandler.Signin)
	e.POST("/logout", r.authHandler.Logout)
	e.POST("/google", r.authHandler.GoogleSignin)

	usersGroup := e.Group("/api/users")
	usersGroup.Use(r.sessionGate.Authenticate)
	{
		usersGroup.GET("", r.accountHandler.LookupAccounts)
		usersGroup.GET("/me", r.accountHandler.GetMe)
		usersGroup.GET("/:id", r.accountHandler.GetAccount)
		usersGroup.PATCH("/:id", r.accountHandler.UpdateAccount)
		usersGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
	}

	adminGroup := e.Group("/api/admin")
	adminGroup.Use(r.sessionGate.Authenticate, r.sessionGate.RequireAdmin)
	{
		adminGroup.GET("/users", r.accountHandler.ListAccounts)
	}
}

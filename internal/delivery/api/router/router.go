// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"maps"
	"slices"

	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/router/handler"
	"crm/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler          *handler.AuthHandler
	SecurityEventHandler *handler.SecurityEventHandler
	RecordHandler        *handler.RecordHandler
	AuthMiddleware       *middleware.AuthMiddleware
	RateLimiter          *middleware.RateLimiter `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler          *handler.AuthHandler
	securityEventHandler *handler.SecurityEventHandler
	recordHandler        *handler.RecordHandler
	authMiddleware       *middleware.AuthMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:          params.AuthHandler,
		securityEventHandler: params.SecurityEventHandler,
		recordHandler:        params.RecordHandler,
		authMiddleware:       params.AuthMiddleware,
		rateLimiter:          params.RateLimiter,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login, r.rateLimiter.Limit)
		authGroup.POST("/refresh", r.authHandler.Refresh, r.rateLimiter.Limit)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Session management requires a valid access token
	sessionsGroup := authGroup.Group("/sessions")
	sessionsGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionsGroup.GET("", r.authHandler.ListSessions)
		sessionsGroup.DELETE("", r.authHandler.RevokeAllSessions)
		sessionsGroup.DELETE("/:id", r.authHandler.RevokeSession)
	}

	// Security event log; health is public so probes need no token
	e.GET("/security-events/health", r.securityEventHandler.Health)
	eventsGroup := e.Group("/security-events")
	eventsGroup.Use(r.authMiddleware.AuthenticateAuditTrail)
	{
		eventsGroup.GET("", r.securityEventHandler.List)
		eventsGroup.GET("/stats", r.securityEventHandler.Stats)
		eventsGroup.GET("/recent", r.securityEventHandler.Recent)
		eventsGroup.GET("/critical", r.securityEventHandler.Critical)
	}

	// Versioned business records, one group per resource
	for _, name := range slices.Sorted(maps.Keys(entity.Resources)) {
		recordGroup := e.Group("/" + name)
		recordGroup.Use(r.authMiddleware.Authenticate)
		{
			recordGroup.POST("", r.recordHandler.Create(name))
			recordGroup.GET("/:id", r.recordHandler.Get(name))
			recordGroup.PUT("/:id", r.recordHandler.Update(name))
		}
	}
}

package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const (
	loginPath          = "/auth/login"
	logoutPath         = "/auth/logout"
	googleCallbackPath = "/auth/google/callback"
	stateCookieName    = "budget_oauth_state"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Reserved for future preferences
	r.GET("/settings", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	editLimiter, err := middleware.NewMemoryLimiter(cfg.EditRateLimit)
	if err != nil {
		return fmt.Errorf("edit rate limit: %w", err)
	}

	sessionCookie := middleware.SessionCookie{Name: cfg.SessionCookieName, Path: "/", Secure: cfg.IsProduction}
	stateCookie := middleware.SessionCookie{Name: stateCookieName, Path: "/auth", Secure: cfg.IsProduction}

	// Register public authentication routes
	authGroup := r.Group("/auth", middleware.RateLimit(loginLimiter))
	registerAuthRoutes(authGroup, services, sessionCookie, stateCookie)

	// Everything else needs a session
	app := r.Group("/", middleware.SessionAuth(services.Session, sessionCookie, loginPath))
	registerBudgetRoutes(app, services.Budget, middleware.RateLimit(editLimiter))

	return nil
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler drives the browser through the Google login and owns
// the session cookie.
type GoogleOAuthHandler struct {
	identity      portssvc.IdentityProviderSvc
	sessions      portssvc.SessionSvcFacade
	sessionCookie middleware.SessionCookie
	stateCookie   middleware.SessionCookie
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	identity portssvc.IdentityProviderSvc,
	sessions portssvc.SessionSvcFacade,
	sessionCookie middleware.SessionCookie,
	stateCookie middleware.SessionCookie,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		identity:      identity,
		sessions:      sessions,
		sessionCookie: sessionCookie,
		stateCookie:   stateCookie,
	}
}

// registerAuthRoutes registers the login, callback and logout routes.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, sessionCookie, stateCookie middleware.SessionCookie) {
	h := NewGoogleOAuthHandler(services.Identity, services.Session, sessionCookie, stateCookie)

	rg.GET("/login", h.Login)
	rg.GET("/google/callback", h.Callback)
	rg.GET("/logout", h.Logout)
}

// Login stores a signed state cookie and sends the browser to Google.
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, cookieValue, err := h.sessions.IssueLoginState(ctx, c.Query("next"))
	if err != nil {
		logger.Error("Failed to issue login state", slog.String("error", err.Error()))
		renderError(c, err, "Could not start sign in. Please try again.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.stateCookie.Name, cookieValue, int((10 * time.Minute).Seconds()), h.stateCookie.Path, "", h.stateCookie.Secure, true)
	c.Redirect(http.StatusFound, h.identity.LoginURL(ctx, state))
}

// Callback completes the login started by Login and sets the session cookie.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if providerErr := c.Query("error"); providerErr != "" {
		logger.Warn("Google returned an error", slog.String("provider_error", providerErr))
		c.HTML(http.StatusUnauthorized, "message.html", messagePage{Title: "Sign in cancelled", Message: "Google did not sign you in."})
		return
	}

	cookieValue, err := c.Cookie(h.stateCookie.Name)
	if err != nil || cookieValue == "" {
		logger.Warn("OAuth callback without state cookie")
		renderError(c, apperrors.NewBadRequestError("missing oauth state cookie"), "Sign in expired. Please start signing in again.")
		return
	}
	h.stateCookie.Clear(c)

	next, err := h.sessions.VerifyLoginState(ctx, cookieValue, c.Query("state"))
	if err != nil {
		logger.Warn("OAuth state verification failed", slog.String("error", err.Error()))
		renderError(c, err, "Sign in could not be verified. Please try again.")
		return
	}

	user, err := h.identity.Authenticate(ctx, c.Query("code"))
	if err != nil {
		logger.Warn("Google authentication failed", slog.String("error", err.Error()))
		renderError(c, err, "Google sign in failed. Please try again.")
		return
	}

	token, expiresAt, err := h.sessions.IssueSession(ctx, *user)
	if err != nil {
		renderError(c, err, "Could not start your session. Please try again.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCookie.Name, token, int(time.Until(expiresAt).Seconds()), h.sessionCookie.Path, "", h.sessionCookie.Secure, true)
	logger.Info("User signed in", slog.String("user_id", user.UserID))
	c.Redirect(http.StatusFound, next)
}

// Logout drops the session cookie.
func (h *GoogleOAuthHandler) Logout(c *gin.Context) {
	h.sessionCookie.Clear(c)
	c.HTML(http.StatusOK, "message.html", messagePage{Title: "Signed out", Message: "You have been signed out."})
}

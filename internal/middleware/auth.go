package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie holding the session token.
type SessionCookie struct {
	Name   string
	Path   string
	Secure bool
}

// Clear expires the cookie on the client.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, sc.Path, "", sc.Secure, true)
}

// SessionAuth creates a Gin middleware handler that resolves the current user
// from the session cookie. Requests without a valid session are redirected to
// loginPath, which sends the caller back to the requested URL after login.
func SessionAuth(sessions portssvc.SessionSvcFacade, cookie SessionCookie, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			logger.Info("No session, redirecting to login")
			redirectToLogin(c, loginPath)
			return
		}

		user, err := sessions.ParseSession(ctx, token)
		if err != nil {
			logger.Warn("Invalid session", slog.String("error", err.Error()))
			cookie.Clear(c)
			redirectToLogin(c, loginPath)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx = WithLogger(WithCurrentUser(ctx, *user), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), user.UserID)

		c.Next()
	}
}

// redirectToLogin aborts the request with a redirect to the login page. Only
// safe methods are resumed after login; anything else lands on the home page.
func redirectToLogin(c *gin.Context, loginPath string) {
	next := "/"
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		next = c.Request.URL.RequestURI()
	}
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(next))
	c.Abort()
}

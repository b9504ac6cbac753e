package middleware

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
const userIDKey = contextKey("userID")

const currentUserKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user domain.CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUserFromCtx returns the authenticated user stored by SessionAuth.
func CurrentUserFromCtx(ctx context.Context) (domain.CurrentUser, bool) {
	user, ok := ctx.Value(currentUserKey).(domain.CurrentUser)
	return user, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID := c.GetString(string(userIDKey)); userID != "" {
		return userID, true
	}
	// check in the request context as well
	if user, ok := CurrentUserFromCtx(c.Request.Context()); ok {
		return user.UserID, true
	}
	return "", false
}

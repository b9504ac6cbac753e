package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// IdentityProviderSvc defines the interface for the external login provider.
type IdentityProviderSvc interface {
	// LoginURL returns the provider URL the browser is sent to.
	LoginURL(ctx context.Context, state string) string
	// Authenticate exchanges the callback code for a verified identity.
	Authenticate(ctx context.Context, code string) (*domain.CurrentUser, error)
}

// SessionSvcFacade defines the interface for session and login-state tokens.
type SessionSvcFacade interface {
	// IssueSession creates a signed session token for user.
	IssueSession(ctx context.Context, user domain.CurrentUser) (string, time.Time, error)
	// ParseSession validates a session token and returns its user.
	ParseSession(ctx context.Context, token string) (*domain.CurrentUser, error)
	// IssueLoginState creates a CSRF state value and a signed cookie value binding it to next.
	IssueLoginState(ctx context.Context, next string) (state string, cookieValue string, err error)
	// VerifyLoginState checks state against the cookie and returns the bound next path.
	VerifyLoginState(ctx context.Context, cookieValue string, state string) (string, error)
}

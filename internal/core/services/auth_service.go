package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const (
	loginStateAudience = "login-state"
	loginStateExpiry   = 10 * time.Minute
)

// sessionService implements the SessionSvcFacade with HS256 signed cookies.
type sessionService struct {
	BaseService
	secret string
	issuer string
	expiry time.Duration
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(cfg *config.Config) portssvc.SessionSvcFacade {
	return &sessionService{
		secret: cfg.SessionSecret,
		issuer: cfg.SessionIssuer,
		expiry: cfg.SessionExpiryDuration,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) IssueSession(ctx context.Context, user domain.CurrentUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	token, err := utils.SignClaims(&utils.SessionClaims{
		Email:    user.Email,
		Name:     user.Name,
		Provider: string(user.Provider),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}, s.secret)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *sessionService) ParseSession(ctx context.Context, token string) (*domain.CurrentUser, error) {
	claims := &utils.SessionClaims{}
	if err := utils.ParseAndValidateJWT(token, s.secret, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	if claims.Issuer != s.issuer || claims.Subject == "" || len(claims.Audience) > 0 {
		return nil, fmt.Errorf("%w: unexpected session claims", apperrors.ErrUnauthenticated)
	}
	return &domain.CurrentUser{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: domain.AuthProvider(claims.Provider),
	}, nil
}

func (s *sessionService) IssueLoginState(ctx context.Context, next string) (string, string, error) {
	state, err := utils.RandomToken(16)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	now := time.Now()
	cookieValue, err := utils.SignClaims(&utils.LoginStateClaims{
		State: state,
		Next:  utils.SafeRedirectPath(next),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{loginStateAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(loginStateExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}, s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign login state: %w", err)
	}
	return state, cookieValue, nil
}

func (s *sessionService) VerifyLoginState(ctx context.Context, cookieValue string, state string) (string, error) {
	claims := &utils.LoginStateClaims{}
	if err := utils.ParseAndValidateJWT(cookieValue, s.secret, claims); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if claims.Issuer != s.issuer || !slices.Contains(claims.Audience, loginStateAudience) {
		return "", apperrors.NewUnauthorizedError("unexpected login state claims")
	}
	if claims.State == "" || subtle.ConstantTimeCompare([]byte(claims.State), []byte(state)) != 1 {
		return "", apperrors.NewUnauthorizedError("oauth state mismatch")
	}
	return utils.SafeRedirectPath(claims.Next), nil
}

// IDTokenValidator verifies a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleIdentityService implements the IdentityProviderSvc for Google OpenID Connect.
type googleIdentityService struct {
	BaseService
	clientID     string
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// IdentityOption is a functional option for configuring the identity service
type IdentityOption func(*googleIdentityService)

// WithOAuthEndpoint overrides the provider endpoints.
func WithOAuthEndpoint(endpoint oauth2.Endpoint) IdentityOption {
	return func(s *googleIdentityService) {
		s.oauth2Config.Endpoint = endpoint
	}
}

// WithIDTokenValidator overrides how ID tokens are verified.
func WithIDTokenValidator(validate IDTokenValidator) IdentityOption {
	return func(s *googleIdentityService) {
		s.validate = validate
	}
}

// NewGoogleIdentityService creates a new instance of googleIdentityService.
func NewGoogleIdentityService(cfg *config.Config, options ...IdentityOption) portssvc.IdentityProviderSvc {
	svc := &googleIdentityService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IdentityProviderSvc = (*googleIdentityService)(nil)

func (s *googleIdentityService) LoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleIdentityService) Authenticate(ctx context.Context, code string) (*domain.CurrentUser, error) {
	if s.clientID == "" {
		// This should ideally be caught at startup, but as a safeguard:
		return nil, errors.New("google client ID is not configured in the application")
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", apperrors.ErrUnauthorized)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange oauth code")
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: token response carries no id_token", apperrors.ErrUnauthorized)
	}

	payload, err := s.validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		s.LogWarn(ctx, err, "Google ID token rejected")
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: google ID token has no subject", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	user := &domain.CurrentUser{
		UserID:   domain.OwnerID(domain.ProviderGoogle, payload.Subject),
		Email:    email,
		Name:     name,
		Provider: domain.ProviderGoogle,
	}
	s.LogInfo(ctx, "User authenticated with Google", slog.String("user_id", user.UserID))
	return user, nil
}

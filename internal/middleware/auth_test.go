package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

func (m *MockSessionService) IssueSession(ctx context.Context, user domain.CurrentUser) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionService) ParseSession(ctx context.Context, token string) (*domain.CurrentUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentUser), args.Error(1)
}

func (m *MockSessionService) IssueLoginState(ctx context.Context, next string) (string, string, error) {
	args := m.Called(ctx, next)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockSessionService) VerifyLoginState(ctx context.Context, cookieValue string, state string) (string, error) {
	args := m.Called(ctx, cookieValue, state)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type SessionAuthTestSuite struct {
	suite.Suite
	router   *gin.Engine
	sessions *MockSessionService
	cookie   middleware.SessionCookie
}

func (suite *SessionAuthTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.sessions = new(MockSessionService)
	suite.cookie = middleware.SessionCookie{Name: "session", Path: "/"}
	suite.router = gin.New()
	suite.router.Use(middleware.SessionAuth(suite.sessions, suite.cookie, "/auth/login"))
	suite.router.GET("/transactions", func(c *gin.Context) {
		user, ok := middleware.CurrentUserFromCtx(c.Request.Context())
		suite.Require().True(ok)
		userID, ok := middleware.GetUserIDFromContext(c)
		suite.Require().True(ok)
		suite.Equal(user.UserID, userID)
		c.String(http.StatusOK, user.UserID)
	})
	suite.router.POST("/edit", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func (suite *SessionAuthTestSuite) TestMissingCookie_RedirectsWithNext() {
	req := httptest.NewRequest(http.MethodGet, "/transactions?x=1", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/auth/login?next=%2Ftransactions%3Fx%3D1", w.Header().Get("Location"))
	suite.sessions.AssertNotCalled(suite.T(), "ParseSession", mock.Anything, mock.Anything)
}

func (suite *SessionAuthTestSuite) TestMissingCookie_PostRedirectsToHomeAfterLogin() {
	req := httptest.NewRequest(http.MethodPost, "/edit", strings.NewReader("amount=1"))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/auth/login?next=%2F", w.Header().Get("Location"))
}

func (suite *SessionAuthTestSuite) TestInvalidSession_ClearsCookieAndRedirects() {
	suite.sessions.On("ParseSession", mock.Anything, "bad-token").Return(nil, apperrors.ErrUnauthenticated).Once()
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "bad-token"})
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusFound, w.Code)
	suite.Contains(w.Header().Get("Set-Cookie"), "session=;")
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *SessionAuthTestSuite) TestValidSession_PassesUserToHandler() {
	user := &domain.CurrentUser{UserID: "google:7", Email: "seven@example.com"}
	suite.sessions.On("ParseSession", mock.Anything, "good-token").Return(user, nil).Once()
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("google:7", w.Body.String())
	suite.sessions.AssertExpectations(suite.T())
}

func TestSessionAuth(t *testing.T) {
	suite.Run(t, new(SessionAuthTestSuite))
}

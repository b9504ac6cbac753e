package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/handlers"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) ResolveBudget(ctx context.Context, owner string) (*domain.Budget, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) RecordEntry(ctx context.Context, owner string, rawAmount string, note string) (*domain.Budget, *domain.Transaction, error) {
	args := m.Called(ctx, owner, rawAmount, note)
	var (
		budget *domain.Budget
		txn    *domain.Transaction
	)
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	if args.Get(1) != nil {
		txn = args.Get(1).(*domain.Transaction)
	}
	return budget, txn, args.Error(2)
}

func (m *MockBudgetService) ListTransactions(ctx context.Context, owner string) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

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

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock IdentityService ---
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) LoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, code string) (*domain.CurrentUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentUser), args.Error(1)
}

var _ portssvc.IdentityProviderSvc = (*MockIdentityService)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockBudget   *MockBudgetService
	mockSession  *MockSessionService
	mockIdentity *MockIdentityService
	user         domain.CurrentUser
}

const validToken = "valid-session-token"

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	tmpl, err := web.Templates()
	suite.Require().NoError(err)
	suite.router.SetHTMLTemplate(tmpl)

	suite.mockBudget = new(MockBudgetService)
	suite.mockSession = new(MockSessionService)
	suite.mockIdentity = new(MockIdentityService)
	suite.user = domain.CurrentUser{UserID: "google:1", Email: "alice@example.com", Provider: domain.ProviderGoogle}

	suite.mockSession.On("ParseSession", mock.Anything, validToken).Return(&suite.user, nil).Maybe()

	cfg := &config.Config{
		SessionCookieName: "budget_session",
		EditRateLimit:     "1000-M",
		LoginRateLimit:    "1000-M",
	}
	services := &portssvc.ServiceContainer{
		Budget:   suite.mockBudget,
		Session:  suite.mockSession,
		Identity: suite.mockIdentity,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services))
}

func (suite *HandlersTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) authed(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "budget_session", Value: validToken})
	return req
}

func editRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHome_Unauthenticated_RedirectsToLogin() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/", nil))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/auth/login?next=%2F", w.Header().Get("Location"))
	suite.mockBudget.AssertNotCalled(suite.T(), "ResolveBudget", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestEdit_Unauthenticated_NoMutation() {
	w := suite.serve(editRequest(url.Values{"amount": {"5"}}))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/auth/login?next=%2F", w.Header().Get("Location"))
	suite.mockBudget.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestHome_NewUser() {
	suite.mockBudget.On("ResolveBudget", mock.Anything, "google:1").Return(domain.NewBudget("google:1", ""), nil).Once()

	w := suite.serve(suite.authed(httptest.NewRequest(http.MethodGet, "/", nil)))

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, `<p id="budget-amount">0</p>`)
	suite.Contains(body, "alice@example.com")
	suite.Contains(body, `href="/transactions"`)
	suite.Contains(body, `href="/auth/logout"`)
	suite.mockBudget.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestHome_StorageError() {
	suite.mockBudget.On("ResolveBudget", mock.Anything, "google:1").Return(nil, assert.AnError).Once()

	w := suite.serve(suite.authed(httptest.NewRequest(http.MethodGet, "/", nil)))

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestEdit_Success() {
	budget := &domain.Budget{Owner: "google:1", Cents: 750, Amount: "£7.50", Currency: "£"}
	txn := &domain.Transaction{Owner: "google:1", Cents: 250, Amount: "£2.50", Note: "coffee"}
	suite.mockBudget.On("RecordEntry", mock.Anything, "google:1", "2.50", "coffee").Return(budget, txn, nil).Once()

	w := suite.serve(suite.authed(editRequest(url.Values{"amount": {"2.50"}, "note": {"coffee"}})))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.mockBudget.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestEdit_LongNoteStillRecordsAmount() {
	longNote := strings.Repeat("n", domain.MaxNoteLength+500)
	budget := &domain.Budget{Owner: "google:1", Cents: 100, Amount: "£1.00", Currency: "£"}
	txn := &domain.Transaction{Owner: "google:1", Cents: 100, Amount: "£1.00"}
	suite.mockBudget.On("RecordEntry", mock.Anything, "google:1", "1", longNote[:domain.MaxNoteLength]).Return(budget, txn, nil).Once()

	w := suite.serve(suite.authed(editRequest(url.Values{"amount": {"1"}, "note": {longNote}})))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.mockBudget.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestEdit_BlankAmountIsNoOp() {
	w := suite.serve(suite.authed(editRequest(url.Values{"amount": {"  "}, "note": {"x"}})))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.mockBudget.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestEdit_MissingAmountIsNoOp() {
	w := suite.serve(suite.authed(editRequest(url.Values{"note": {"x"}})))

	suite.Equal(http.StatusFound, w.Code)
	suite.mockBudget.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestEdit_InvalidAmountIsNoOp() {
	suite.mockBudget.On("RecordEntry", mock.Anything, "google:1", "abc", "").Return(nil, nil, apperrors.ErrInvalidAmount).Once()

	w := suite.serve(suite.authed(editRequest(url.Values{"amount": {"abc"}})))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.mockBudget.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestEdit_StorageFailure() {
	storageErr := apperrors.NewAppError(http.StatusInternalServerError, "budget was modified concurrently", apperrors.ErrConflict)
	suite.mockBudget.On("RecordEntry", mock.Anything, "google:1", "1", "").Return(nil, nil, storageErr).Once()

	w := suite.serve(suite.authed(editRequest(url.Values{"amount": {"1"}})))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "concurrently")
}

func (suite *HandlersTestSuite) TestTransactions_List() {
	txns := []domain.Transaction{
		{Owner: "google:1", Cents: -250, Amount: "£-2.50", PrettyDate: "Tue Mar  5 14:07:09 2024", Note: "coffee"},
		{Owner: "google:1", Cents: 500, Amount: "£5.00", PrettyDate: "Mon Mar  4 09:00:00 2024", Note: "pay\nday"},
	}
	suite.mockBudget.On("ListTransactions", mock.Anything, "google:1").Return(txns, nil).Once()

	w := suite.serve(suite.authed(httptest.NewRequest(http.MethodGet, "/transactions", nil)))

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "£-2.50")
	suite.Contains(body, "coffee")
	suite.Less(strings.Index(body, "coffee"), strings.Index(body, "£5.00"))
	suite.Contains(body, `<a href="/">Back</a>`)
}

func (suite *HandlersTestSuite) TestTransactions_Empty() {
	suite.mockBudget.On("ListTransactions", mock.Anything, "google:1").Return([]domain.Transaction{}, nil).Once()

	w := suite.serve(suite.authed(httptest.NewRequest(http.MethodGet, "/transactions", nil)))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "No transactions yet.")
}

func (suite *HandlersTestSuite) TestTransactions_Unauthenticated() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/transactions", nil))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/auth/login?next=%2Ftransactions", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestSettings_NoAction() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/settings", nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_RedirectsToGoogle() {
	suite.mockSession.On("IssueLoginState", mock.Anything, "/transactions").Return("state-1", "signed-state", nil).Once()
	suite.mockIdentity.On("LoginURL", mock.Anything, "state-1").Return("https://accounts.example/auth?state=state-1").Once()

	w := suite.serve(httptest.NewRequest(http.MethodGet, "/auth/login?next=%2Ftransactions", nil))

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("https://accounts.example/auth?state=state-1", w.Header().Get("Location"))
	suite.Contains(w.Header().Get("Set-Cookie"), "budget_oauth_state=signed-state")
	suite.Contains(w.Header().Get("Set-Cookie"), "HttpOnly")
}

func (suite *HandlersTestSuite) TestCallback_Success() {
	suite.mockSession.On("VerifyLoginState", mock.Anything, "signed-state", "state-1").Return("/transactions", nil).Once()
	suite.mockIdentity.On("Authenticate", mock.Anything, "auth-code").Return(&suite.user, nil).Once()
	suite.mockSession.On("IssueSession", mock.Anything, suite.user).Return("new-session", time.Now().Add(time.Hour), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=state-1&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "budget_oauth_state", Value: "signed-state"})
	w := suite.serve(req)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/transactions", w.Header().Get("Location"))
	cookies := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	suite.Contains(cookies, "budget_session=new-session")
	suite.mockIdentity.AssertExpectations(suite.T())
	suite.mockSession.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCallback_StateMismatch() {
	suite.mockSession.On("VerifyLoginState", mock.Anything, "signed-state", "forged").Return("", apperrors.ErrUnauthorized).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "budget_oauth_state", Value: "signed-state"})
	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockIdentity.AssertNotCalled(suite.T(), "Authenticate", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestCallback_MissingStateCookie() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=s&code=c", nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSession.AssertNotCalled(suite.T(), "VerifyLoginState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestCallback_ProviderError() {
	w := suite.serve(httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil))

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestLogout_ClearsSession() {
	w := suite.serve(suite.authed(httptest.NewRequest(http.MethodGet, "/auth/logout", nil)))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Set-Cookie"), "budget_session=;")
	suite.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// budgetHandler serves the budget pages.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers the home, edit and transactions routes.
// Every route expects SessionAuth to have run.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, editLimit gin.HandlerFunc) {
	h := newBudgetHandler(budgetService)

	rg.GET("/", h.home)
	rg.POST("/edit", editLimit, h.editBudget)
	rg.GET("/transactions", h.listTransactions)
}

// currentUser returns the user SessionAuth put on the request. A missing
// user means the route was registered without SessionAuth.
func currentUser(c *gin.Context) (domain.CurrentUser, bool) {
	user, ok := middleware.CurrentUserFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Current user not found in context")
		renderError(c, apperrors.NewInternalServerError("current user missing"), "Please sign in again.")
	}
	return user, ok
}

func (h *budgetHandler) home(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.ResolveBudget(c.Request.Context(), user.UserID)
	if err != nil {
		renderError(c, err, "Could not load your budget. Please try again.")
		return
	}

	c.HTML(http.StatusOK, "index.html", dto.HomePage{
		Budget:      dto.ToBudgetView(*budget),
		User:        user.DisplayName(),
		URL:         strings.TrimSuffix(c.Request.URL.Path, "/") + "/transactions",
		URLLinkText: "View transactions",
		LogoutURL:   logoutPath,
	})
}

// editBudget applies the posted amount. Missing or unparseable amounts are
// ignored and the user is sent back home either way.
func (h *budgetHandler) editBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.EditBudgetRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind budget edit form", slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, "/")
		return
	}

	if strings.TrimSpace(req.Amount) == "" {
		logger.Info("Budget edit without amount, nothing to do")
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, _, err := h.budgetService.RecordEntry(c.Request.Context(), user.UserID, req.Amount, domain.TruncateNote(req.Note))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderError(c, err, "Could not save your change. Please try again.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *budgetHandler) listTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txns, err := h.budgetService.ListTransactions(c.Request.Context(), user.UserID)
	if err != nil {
		renderError(c, err, "Could not load your transactions. Please try again.")
		return
	}

	c.HTML(http.StatusOK, "transactions.html", dto.TransactionsPage{
		Transactions: dto.ToTransactionViews(txns),
		User:         user.DisplayName(),
		URL:          utils.ParentPath(c.Request.URL.Path),
		URLLinkText:  "Back",
	})
}

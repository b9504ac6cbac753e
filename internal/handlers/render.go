package handlers

import (
	"net/http"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// messagePage is the data rendered by message.html.
type messagePage struct {
	Title   string
	Message string
}

// renderError answers with the status mapped from err and a generic page.
// Error details stay in the logs.
func renderError(c *gin.Context, err error, message string) {
	status := apperrors.StatusCode(err)
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.HTML(status, "message.html", messagePage{Title: http.StatusText(status), Message: message})
}

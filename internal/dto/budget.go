package dto

import "github.com/SscSPs/budget_tracker/internal/core/domain"

// EditBudgetRequest is the form posted to /edit. Amount is parsed by the
// budget service so an unparseable value can be ignored rather than rejected.
// Notes longer than domain.MaxNoteLength are truncated, not rejected.
type EditBudgetRequest struct {
	Amount string `form:"amount" binding:"max=64"`
	Note   string `form:"note"`
}

// BudgetView is what the home page shows of a budget.
type BudgetView struct {
	Amount   string
	Currency string
	Cents    int64
}

// ToBudgetView converts a domain Budget to a BudgetView
func ToBudgetView(b domain.Budget) BudgetView {
	return BudgetView{
		Amount:   b.Amount,
		Currency: b.Currency,
		Cents:    b.Cents,
	}
}

// HomePage is the data rendered by index.html.
type HomePage struct {
	Budget      BudgetView
	User        string
	URL         string
	URLLinkText string
	LogoutURL   string
}

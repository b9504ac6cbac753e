package dto

import "github.com/SscSPs/budget_tracker/internal/core/domain"

// TransactionView is one row of the transactions page.
type TransactionView struct {
	PrettyDate string
	Amount     string
	Note       string
	Negative   bool
}

// ToTransactionView converts a domain Transaction to a TransactionView
func ToTransactionView(t domain.Transaction) TransactionView {
	return TransactionView{
		PrettyDate: t.PrettyDate,
		Amount:     t.Amount,
		Note:       t.Note,
		Negative:   t.Cents < 0,
	}
}

// ToTransactionViews converts a slice of domain Transactions, keeping their order.
func ToTransactionViews(ts []domain.Transaction) []TransactionView {
	views := make([]TransactionView, len(ts))
	for i, t := range ts {
		views[i] = ToTransactionView(t)
	}
	return views
}

// TransactionsPage is the data rendered by transactions.html.
type TransactionsPage struct {
	Transactions []TransactionView
	User         string
	URL          string
	URLLinkText  string
}

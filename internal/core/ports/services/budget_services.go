package services

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// ResolveBudget returns the owner's stored budget or a fresh unsaved one.
	ResolveBudget(ctx context.Context, owner string) (*domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// RecordEntry applies rawAmount to the owner's budget and appends the
	// matching transaction. Both are persisted together or not at all.
	// A blank or unparseable rawAmount yields apperrors.ErrInvalidAmount.
	RecordEntry(ctx context.Context, owner string, rawAmount string, note string) (*domain.Budget, *domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactions returns the owner's most recent transactions, newest first.
	ListTransactions(ctx context.Context, owner string) ([]domain.Transaction, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	TransactionReaderSvc
}

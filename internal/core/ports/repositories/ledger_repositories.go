package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByOwner returns the owner's budget, or apperrors.ErrNotFound.
	// Should the store hold more than one row for an owner, the oldest wins.
	FindBudgetByOwner(ctx context.Context, owner string) (*domain.Budget, error)
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactionsByOwner returns at most limit transactions of owner, newest first.
	ListTransactionsByOwner(ctx context.Context, owner string, limit int) ([]domain.Transaction, error)
}

// LedgerWriter defines write operations that change a balance
type LedgerWriter interface {
	// SaveEntry persists the updated budget and its transaction in one store
	// transaction. When isNew is set the budget is inserted, otherwise it is
	// updated only if the stored version still equals budget.Version, and the
	// stored version becomes budget.Version+1. A lost race yields
	// apperrors.ErrConflict and nothing is written.
	SaveEntry(ctx context.Context, budget domain.Budget, isNew bool, txn domain.Transaction) error
}

// LedgerRepositoryFacade combines all budget and transaction repository interfaces
type LedgerRepositoryFacade interface {
	BudgetReader
	TransactionReader
	LedgerWriter
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/google/uuid"
)

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	defaultCurrency string
	now             func() time.Time
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithDefaultCurrency sets the currency symbol given to budgets created on first access.
func WithDefaultCurrency(symbol string) BudgetServiceOption {
	return func(s *budgetService) {
		if symbol != "" {
			s.defaultCurrency = symbol
		}
	}
}

// WithClock replaces the time source used to stamp new records.
func WithClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBudgetService creates a new budget service with the provided options
func NewBudgetService(repo portsrepo.LedgerRepositoryFacade, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		ledgerRepo:      repo,
		defaultCurrency: domain.DefaultCurrencySymbol,
		now:             time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) ResolveBudget(ctx context.Context, owner string) (*domain.Budget, error) {
	budget, err := s.ledgerRepo.FindBudgetByOwner(ctx, owner)
	if err == nil {
		return budget, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "No stored budget, starting from zero", slog.String("owner", owner))
		return domain.NewBudget(owner, s.defaultCurrency), nil
	}
	s.LogError(ctx, err, "Failed to find budget", slog.String("owner", owner))
	return nil, fmt.Errorf("failed to resolve budget: %w", err)
}

func (s *budgetService) RecordEntry(ctx context.Context, owner string, rawAmount string, note string) (*domain.Budget, *domain.Transaction, error) {
	cents, err := domain.ParseMinorUnits(rawAmount)
	if err != nil {
		s.LogWarn(ctx, err, "Ignoring budget edit with invalid amount",
			slog.String("owner", owner),
			slog.String("amount", rawAmount))
		return nil, nil, err
	}

	budget, err := s.ResolveBudget(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	isNew := budget.IsNew()
	if isNew {
		budget.BudgetID = uuid.NewString()
		budget.CreatedAt = now
		budget.CreatedBy = owner
		budget.Version = 1
	}

	if err := budget.ApplyDelta(cents); err != nil {
		s.LogWarn(ctx, err, "Ignoring budget edit that would overflow the balance",
			slog.String("owner", owner),
			slog.Int64("cents", cents))
		return nil, nil, err
	}
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = owner

	txn := domain.NewTransaction(owner, *budget, cents, note, now)
	txn.TransactionID = uuid.NewString()

	if err := s.ledgerRepo.SaveEntry(ctx, *budget, isNew, *txn); err != nil {
		s.LogError(ctx, err, "Failed to save budget entry",
			slog.String("owner", owner),
			slog.String("budget_id", budget.BudgetID),
			slog.Bool("new_budget", isNew))
		return nil, nil, fmt.Errorf("failed to record entry: %w", err)
	}
	if !isNew {
		budget.Version++
	}

	s.LogInfo(ctx, "Budget entry recorded",
		slog.String("budget_id", budget.BudgetID),
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("cents", cents))
	return budget, txn, nil
}

func (s *budgetService) ListTransactions(ctx context.Context, owner string) ([]domain.Transaction, error) {
	txns, err := s.ledgerRepo.ListTransactionsByOwner(ctx, owner, domain.MaxTransactionListSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner", owner))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

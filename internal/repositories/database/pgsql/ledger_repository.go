package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for budgets and their transactions.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// FindBudgetByOwner retrieves the budget of owner.
func (r *PgxLedgerRepository) FindBudgetByOwner(ctx context.Context, owner string) (*domain.Budget, error) {
	query := `
		SELECT budget_id, owner, cents, amount, currency, created_at, created_by, last_updated_at, last_updated_by, version
		FROM budgets
		WHERE owner = $1
		ORDER BY created_at ASC
		LIMIT 1;
	`
	var modelBudget models.Budget
	err := r.Pool.QueryRow(ctx, query, owner).Scan(
		&modelBudget.BudgetID,
		&modelBudget.Owner,
		&modelBudget.Cents,
		&modelBudget.Amount,
		&modelBudget.Currency,
		&modelBudget.CreatedAt,
		&modelBudget.CreatedBy,
		&modelBudget.LastUpdatedAt,
		&modelBudget.LastUpdatedBy,
		&modelBudget.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget", err)
	}

	domainBudget := mapping.ToDomainBudget(modelBudget)
	return &domainBudget, nil
}

// ListTransactionsByOwner retrieves the newest transactions of owner.
func (r *PgxLedgerRepository) ListTransactionsByOwner(ctx context.Context, owner string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, owner, cents, amount, date, pretty_date, note
		FROM transactions
		WHERE owner = $1
		ORDER BY date DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		var txn models.Transaction
		err := row.Scan(
			&txn.TransactionID,
			&txn.Owner,
			&txn.Cents,
			&txn.Amount,
			&txn.Date,
			&txn.PrettyDate,
			&txn.Note,
		)
		return txn, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// SaveEntry writes the budget and its transaction in a single database transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, budget domain.Budget, isNew bool, txn domain.Transaction) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := r.writeBudget(ctx, tx, mapping.ToModelBudget(budget), isNew); err != nil {
			return err
		}
		return r.insertTransaction(ctx, tx, mapping.ToModelTransaction(txn))
	})
}

func (r *PgxLedgerRepository) insertTransaction(ctx context.Context, tx pgx.Tx, t models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, owner, cents, amount, date, pretty_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		t.TransactionID,
		t.Owner,
		t.Cents,
		t.Amount,
		t.Date,
		t.PrettyDate,
		t.Note,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction", err)
	}
	return nil
}

func (r *PgxLedgerRepository) writeBudget(ctx context.Context, tx pgx.Tx, b models.Budget, isNew bool) error {
	if isNew {
		insert := `
			INSERT INTO budgets (budget_id, owner, cents, amount, currency, created_at, created_by, last_updated_at, last_updated_by, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (owner) DO NOTHING;
		`
		tag, err := tx.Exec(ctx, insert,
			b.BudgetID, b.Owner, b.Cents, b.Amount, b.Currency,
			b.CreatedAt, b.CreatedBy, b.LastUpdatedAt, b.LastUpdatedBy, b.Version,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert budget", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(500, "budget was created concurrently", apperrors.ErrConflict)
		}
		return nil
	}

	update := `
		UPDATE budgets
		SET cents = $1, amount = $2, currency = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE budget_id = $6 AND version = $7;
	`
	tag, err := tx.Exec(ctx, update,
		b.Cents, b.Amount, b.Currency, b.LastUpdatedAt, b.LastUpdatedBy,
		b.BudgetID, b.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update budget %s", b.BudgetID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(500, "budget was modified concurrently", apperrors.ErrConflict)
	}
	return nil
}

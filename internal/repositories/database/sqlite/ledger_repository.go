package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
)

// LedgerRepository stores budgets and transactions in a SQLite file.
// Timestamps are persisted as unix nanoseconds.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a repository over an open, migrated database.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) FindBudgetByOwner(ctx context.Context, owner string) (*domain.Budget, error) {
	query := `
		SELECT budget_id, owner, cents, amount, currency, created_at, created_by, last_updated_at, last_updated_by, version
		FROM budgets
		WHERE owner = ?
		ORDER BY created_at ASC
		LIMIT 1;
	`
	var (
		m                    models.Budget
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, owner).Scan(
		&m.BudgetID,
		&m.Owner,
		&m.Cents,
		&m.Amount,
		&m.Currency,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget", err)
	}
	m.CreatedAt = time.Unix(0, createdAt)
	m.LastUpdatedAt = time.Unix(0, updatedAt)

	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *LedgerRepository) ListTransactionsByOwner(ctx context.Context, owner string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, owner, cents, amount, date, pretty_date, note
		FROM transactions
		WHERE owner = ?
		ORDER BY date DESC, transaction_id DESC
		LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			m    models.Transaction
			date int64
		)
		if err := rows.Scan(&m.TransactionID, &m.Owner, &m.Cents, &m.Amount, &date, &m.PrettyDate, &m.Note); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		m.Date = time.Unix(0, date)
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}

func (r *LedgerRepository) SaveEntry(ctx context.Context, budget domain.Budget, isNew bool, txn domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback() // Ignored once committed

	b := mapping.ToModelBudget(budget)
	var res sql.Result
	if isNew {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO budgets (budget_id, owner, cents, amount, currency, created_at, created_by, last_updated_at, last_updated_by, version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (owner) DO NOTHING;`,
			b.BudgetID, b.Owner, b.Cents, b.Amount, b.Currency,
			b.CreatedAt.UnixNano(), b.CreatedBy, b.LastUpdatedAt.UnixNano(), b.LastUpdatedBy, b.Version,
		)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE budgets
			SET cents = ?, amount = ?, currency = ?, last_updated_at = ?, last_updated_by = ?, version = version + 1
			WHERE budget_id = ? AND version = ?;`,
			b.Cents, b.Amount, b.Currency, b.LastUpdatedAt.UnixNano(), b.LastUpdatedBy,
			b.BudgetID, b.Version,
		)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to write budget", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to write budget", err)
	}
	if affected == 0 {
		return apperrors.NewAppError(500, "budget was modified concurrently", apperrors.ErrConflict)
	}

	t := mapping.ToModelTransaction(txn)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, owner, cents, amount, date, pretty_date, note)
		VALUES (?, ?, ?, ?, ?, ?, ?);`,
		t.TransactionID, t.Owner, t.Cents, t.Amount, t.Date.UnixNano(), t.PrettyDate, t.Note,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

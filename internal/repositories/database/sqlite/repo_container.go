package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewLedgerRepository(db),
		Closer:     db,
	}
}

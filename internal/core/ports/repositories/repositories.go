package repositories

import "io"

// RepositoryProvider holds all repository interfaces needed by services.
// Closer releases the underlying store handle.
type RepositoryProvider struct {
	LedgerRepo LedgerRepositoryFacade
	Closer     io.Closer
}

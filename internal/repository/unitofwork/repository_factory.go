package unitofwork

import "context"

// RepositoryFactory creates a fresh UnitOfWork per request scope.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

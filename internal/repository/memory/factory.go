package memory

import (
	"context"

	"tasknotes-be/internal/repository/contract"
	"tasknotes-be/internal/repository/unitofwork"
)

// Factory satisfies unitofwork.RepositoryFactory over the in-memory stores.
// Begin/Commit/Rollback are no-ops; every operation is immediately visible.
type Factory struct {
	notes *NoteRepository
	users *UserRepository
}

func NewFactory() *Factory {
	return &Factory{
		notes: NewNoteRepository(),
		users: NewUserRepository(),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

func (f *Factory) Notes() *NoteRepository {
	return f.notes
}

func (f *Factory) Users() *UserRepository {
	return f.users
}

type unitOfWork struct {
	factory *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.users
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return u.factory.notes
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

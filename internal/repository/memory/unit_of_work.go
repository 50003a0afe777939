package memory

import (
	"context"

	"docvault-rag-be/internal/repository/contract"
	"docvault-rag-be/internal/repository/unitofwork"
)

// Factory wires the in-memory repositories behind the unit-of-work contracts
// so services can be exercised deterministically without Postgres. Begin and
// Commit are no-ops; the stores apply writes immediately.
type Factory struct {
	Users     *UserRepository
	Documents *DocumentRepository
	Chunks    *ChunkRepository
	Audit     *AuditRepository
}

func NewFactory() *Factory {
	docs := NewDocumentRepository()
	return &Factory{
		Users:     NewUserRepository(),
		Documents: docs,
		Chunks:    NewChunkRepository(docs),
		Audit:     NewAuditRepository(),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.Users
}

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.factory.Documents
}

func (u *unitOfWork) ChunkRepository() contract.ChunkRepository {
	return u.factory.Chunks
}

func (u *unitOfWork) AuditRepository() contract.AuditRepository {
	return u.factory.Audit
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

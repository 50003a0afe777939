package unitofwork

import (
	"context"

	"docvault-rag-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one request and, between Begin and
// Commit, to one transaction. Ingest relies on this for its write-then-publish
// ordering: chunks and descriptor land in the same transaction, and the
// commit is the point where the document becomes visible to search.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	AuditRepository() contract.AuditRepository
}

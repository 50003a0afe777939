package contract

import (
	"context"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/specification"
)

// AuditRepository is append-only: there is deliberately no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, decision *entity.AccessDecision) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessDecision, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

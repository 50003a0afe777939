package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/contract"
	"docvault-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AuditRepository is an append-only in-memory sink. FailWith lets tests
// simulate an unavailable audit store.
type AuditRepository struct {
	mu        sync.RWMutex
	decisions []*entity.AccessDecision

	FailWith error
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Create(ctx context.Context, decision *entity.AccessDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	if decision.Id == uuid.Nil {
		decision.Id = uuid.New()
	}
	cp := *decision
	r.decisions = append(r.decisions, &cp)
	return nil
}

func (r *AuditRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessDecision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.AccessDecision
	for _, d := range r.decisions {
		if matchDecision(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	// Newest first with id as the tie-break, matching the SQL repository's
	// trail ordering.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].Id.String(), out[j].Id.String()) > 0
	})
	return out, nil
}

func (r *AuditRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matchDecision(d *entity.AccessDecision, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.BySubject:
			if d.SubjectId != sp.SubjectID {
				return false
			}
		case specification.ByAction:
			if string(d.Action) != sp.Action {
				return false
			}
		case specification.ByOutcome:
			if string(d.Outcome) != sp.Outcome {
				return false
			}
		case specification.Since:
			if d.CreatedAt.Before(sp.Time) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// ordering is fixed and tests slice results themselves
		default:
			return false
		}
	}
	return true
}

var _ contract.AuditRepository = (*AuditRepository)(nil)

package memory

import (
	"context"
	"sync"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/contract"
	"docvault-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository struct {
	mu          sync.RWMutex
	descriptors []*entity.DocumentDescriptor
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) CreateDescriptor(ctx context.Context, d *entity.DocumentDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	cp := *d
	r.descriptors = append(r.descriptors, &cp)
	return nil
}

func (r *DocumentRepository) SupersedeDescriptor(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.descriptors {
		if d.DocumentId == documentId && d.Current {
			d.Current = false
		}
	}
	return nil
}

func (r *DocumentRepository) FindCurrentDescriptor(ctx context.Context, documentId uuid.UUID) (*entity.DocumentDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d := r.currentDescriptorLocked(documentId); d != nil {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *DocumentRepository) FindDescriptors(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.DocumentDescriptor
	for _, d := range r.descriptors {
		if matchDescriptor(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *DocumentRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.descriptors[:0]
	for _, d := range r.descriptors {
		if d.DocumentId != documentId {
			kept = append(kept, d)
		}
	}
	r.descriptors = kept
	return nil
}

// currentDescriptor is used by the in-memory chunk index while ranking.
func (r *DocumentRepository) currentDescriptor(documentId uuid.UUID) *entity.DocumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d := r.currentDescriptorLocked(documentId); d != nil {
		cp := *d
		return &cp
	}
	return nil
}

func (r *DocumentRepository) currentDescriptorLocked(documentId uuid.UUID) *entity.DocumentDescriptor {
	for _, d := range r.descriptors {
		if d.DocumentId == documentId && d.Current {
			return d
		}
	}
	return nil
}

// matchDescriptor interprets the subset of specifications the in-memory
// store understands. Unknown specifications match nothing so a test cannot
// silently widen a query.
func matchDescriptor(d *entity.DocumentDescriptor, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByDocumentID:
			if d.DocumentId != sp.DocumentID {
				return false
			}
		case specification.CurrentOnly:
			if !d.Current {
				return false
			}
		case specification.ByDepartment:
			if d.Department != sp.Department {
				return false
			}
		case specification.ByOwner:
			if d.OwnerId != sp.OwnerID {
				return false
			}
		default:
			return false
		}
	}
	return true
}

var _ contract.DocumentRepository = (*DocumentRepository)(nil)

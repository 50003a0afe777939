package implementation

import (
	"context"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/mapper"
	"docvault-rag-be/internal/model"
	"docvault-rag-be/internal/repository/contract"
	"docvault-rag-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	return &AuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, decision *entity.AccessDecision) error {
	m, err := r.mapper.ToModel(decision)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*decision = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessDecision, error) {
	var models []*model.AccessDecision
	if err := r.trailQuery(ctx, specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AccessDecision, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// trailQuery applies the filters plus the trail's newest-first ordering, with
// id as the tie-break so offset pagination stays stable across requests.
func (r *AuditRepositoryImpl) trailQuery(ctx context.Context, specs ...specification.Specification) *gorm.DB {
	return applySpecifications(r.db.WithContext(ctx), specs...).
		Order("created_at DESC, id DESC")
}

func (r *AuditRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.AccessDecision{}).Count(&count).Error
	return count, err
}

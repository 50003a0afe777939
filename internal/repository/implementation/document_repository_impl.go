package implementation

import (
	"context"
	"errors"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/mapper"
	"docvault-rag-be/internal/model"
	"docvault-rag-be/internal/repository/contract"
	"docvault-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) CreateDescriptor(ctx context.Context, d *entity.DocumentDescriptor) error {
	m := r.mapper.DescriptorToModel(d)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.DescriptorToEntity(m)
	if err != nil {
		return err
	}
	*d = *e
	return nil
}

func (r *DocumentRepositoryImpl) SupersedeDescriptor(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.DocumentDescriptor{}).
		Where("document_id = ? AND current = ?", documentId, true).
		Update("current", false).Error
}

func (r *DocumentRepositoryImpl) FindCurrentDescriptor(ctx context.Context, documentId uuid.UUID) (*entity.DocumentDescriptor, error) {
	var m model.DocumentDescriptor
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND current = ?", documentId, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DescriptorToEntity(&m)
}

func (r *DocumentRepositoryImpl) FindDescriptors(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentDescriptor, error) {
	var models []*model.DocumentDescriptor
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentDescriptor, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.DescriptorToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *DocumentRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Delete(&model.DocumentDescriptor{}).Error
}

package mapper

import (
	"encoding/json"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(d *model.AccessDecision) *entity.AccessDecision {
	if d == nil {
		return nil
	}

	var details map[string]interface{}
	if len(d.Details) > 0 {
		// Ignore malformed details rather than losing the audit row itself.
		_ = json.Unmarshal(d.Details, &details)
	}

	role, err := entity.ParseRole(d.Role)
	if err != nil {
		role = 0
	}

	return &entity.AccessDecision{
		Id:         d.Id,
		SubjectId:  d.SubjectId,
		Role:       role,
		Action:     entity.Action(d.Action),
		ResourceId: d.ResourceId,
		Outcome:    entity.Outcome(d.Outcome),
		Reason:     d.Reason,
		Details:    details,
		CreatedAt:  d.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(d *entity.AccessDecision) (*model.AccessDecision, error) {
	if d == nil {
		return nil, nil
	}

	var details datatypes.JSON
	if d.Details != nil {
		raw, err := json.Marshal(d.Details)
		if err != nil {
			return nil, err
		}
		details = datatypes.JSON(raw)
	}

	return &model.AccessDecision{
		Id:         d.Id,
		SubjectId:  d.SubjectId,
		Role:       d.Role.String(),
		Action:     string(d.Action),
		ResourceId: d.ResourceId,
		Outcome:    string(d.Outcome),
		Reason:     d.Reason,
		Details:    details,
		CreatedAt:  d.CreatedAt,
	}, nil
}

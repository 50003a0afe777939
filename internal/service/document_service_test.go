package service

import (
	"context"
	"errors"
	"testing"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingestRequest() *dto.IngestRequest {
	return &dto.IngestRequest{
		Title:   "Quarterly Roadmap",
		Content: "First paragraph about the roadmap.\n\nSecond paragraph with details.",
	}
}

func TestIngestByManagerOwnDepartment(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()
	mgr := manager("engineering")

	res, err := svc.Ingest(ctx, mgr, ingestRequest())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.DocumentId)
	assert.Greater(t, res.ChunkCount, 0)

	desc, err := env.factory.Documents.FindCurrentDescriptor(ctx, res.DocumentId)
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, "engineering", desc.Department)
	assert.Equal(t, entity.RoleEmployee, desc.MinRole)
	assert.Equal(t, mgr.SubjectId, desc.OwnerId)
	assert.True(t, desc.Current)

	records, err := env.factory.Audit.FindAll(ctx, specification.ByAction{Action: "ingest"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.OutcomeAllowed, records[0].Outcome)
	assert.Equal(t, mgr.SubjectId, records[0].SubjectId)
}

func TestIngestByEmployeeDenied(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()

	_, err := svc.Ingest(ctx, employee("engineering"), ingestRequest())
	require.Error(t, err)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Equal(t, "insufficient_role", appErr.Reason)

	// The denial itself must be on the audit trail.
	records, err := env.factory.Audit.FindAll(ctx, specification.ByOutcome{Outcome: "denied"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.ActionIngest, records[0].Action)

	descs, err := env.factory.Documents.FindDescriptors(ctx)
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestIngestByManagerForeignDepartmentDenied(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()

	req := ingestRequest()
	req.Department = "finance"

	_, err := svc.Ingest(context.Background(), manager("engineering"), req)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Equal(t, "insufficient_role", appErr.Reason)
}

func TestIngestByExecutiveForeignDepartment(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()

	req := ingestRequest()
	req.Department = "finance"
	req.MinRole = "Manager"
	req.Classification = "confidential"

	res, err := svc.Ingest(context.Background(), executive(), req)
	require.NoError(t, err)

	desc, err := env.factory.Documents.FindCurrentDescriptor(context.Background(), res.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, "finance", desc.Department)
	assert.Equal(t, entity.RoleManager, desc.MinRole)
	assert.Equal(t, entity.ClassificationConfidential, desc.Classification)
}

func TestIngestFailsWhenAuditSinkDown(t *testing.T) {
	env := newTestEnv()
	env.factory.Audit.FailWith = errors.New("sink down")
	svc := env.documentService()

	_, err := svc.Ingest(context.Background(), manager("engineering"), ingestRequest())
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeAuditUnavailable, appErr.Code)
}

func TestDeniedIngestFailsWhenAuditSinkDown(t *testing.T) {
	env := newTestEnv()
	env.factory.Audit.FailWith = errors.New("sink down")
	svc := env.documentService()

	// Even the denial cannot be reported without a durable audit record.
	_, err := svc.Ingest(context.Background(), employee("engineering"), ingestRequest())
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeAuditUnavailable, appErr.Code)
}

func TestRetagSupersedesDescriptor(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()
	mgr := manager("engineering")

	res, err := svc.Ingest(ctx, mgr, ingestRequest())
	require.NoError(t, err)

	updated, err := svc.Retag(ctx, mgr, res.DocumentId, &dto.RetagRequest{MinRole: "Manager"})
	require.NoError(t, err)
	assert.Equal(t, "Manager", updated.MinRole)

	desc, err := env.factory.Documents.FindCurrentDescriptor(ctx, res.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, desc.MinRole)
	assert.NotEqual(t, res.DescriptorId, desc.Id, "retag must create a new descriptor generation")

	all, err := env.factory.Documents.FindDescriptors(ctx, specification.ByDocumentID{DocumentID: res.DocumentId})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRetagForeignDepartmentByManagerDenied(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()

	res, err := svc.Ingest(ctx, executive(), &dto.IngestRequest{
		Title:      "Finance Doc",
		Content:    "Numbers.",
		Department: "finance",
	})
	require.NoError(t, err)

	_, err = svc.Retag(ctx, manager("engineering"), res.DocumentId, &dto.RetagRequest{MinRole: "Employee"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Equal(t, "department_mismatch", appErr.Reason)
}

func TestRetagNoopStillAudited(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()
	mgr := manager("engineering")

	res, err := svc.Ingest(ctx, mgr, ingestRequest())
	require.NoError(t, err)

	_, err = svc.Retag(ctx, mgr, res.DocumentId, &dto.RetagRequest{})
	require.NoError(t, err)

	// Still a single descriptor generation.
	all, err := env.factory.Documents.FindDescriptors(ctx, specification.ByDocumentID{DocumentID: res.DocumentId})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	records, err := env.factory.Audit.FindAll(ctx, specification.ByAction{Action: "retag"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, true, records[0].Details["noop"])
}

func TestRetagUnknownDocument(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()

	_, err := svc.Retag(context.Background(), manager("engineering"), uuid.New(), &dto.RetagRequest{MinRole: "Manager"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeDescriptorNotFound, appErr.Code)
}

func TestDeleteRemovesDocumentAndChunks(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()
	mgr := manager("engineering")

	res, err := svc.Ingest(ctx, mgr, ingestRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, mgr, res.DocumentId))

	desc, err := env.factory.Documents.FindCurrentDescriptor(ctx, res.DocumentId)
	require.NoError(t, err)
	assert.Nil(t, desc)

	results, err := env.factory.Chunks.SearchVisible(ctx, []float32{1, 0}, 10, executive())
	require.NoError(t, err)
	assert.Empty(t, results)

	records, err := env.factory.Audit.FindAll(ctx, specification.ByAction{Action: "delete_document"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDeleteExecutiveTaggedByManagerDenied(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()

	res, err := svc.Ingest(ctx, executive(), &dto.IngestRequest{
		Title:      "Board Minutes",
		Content:    "Strictly confidential.",
		Department: "engineering",
		MinRole:    "Executive",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, manager("engineering"), res.DocumentId)
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Equal(t, "insufficient_role", appErr.Reason)
}

func TestListFiltersByVisibility(t *testing.T) {
	env := newTestEnv()
	svc := env.documentService()
	ctx := context.Background()

	_, err := svc.Ingest(ctx, manager("engineering"), ingestRequest())
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, executive(), &dto.IngestRequest{
		Title:      "Finance Doc",
		Content:    "Numbers.",
		Department: "finance",
	})
	require.NoError(t, err)

	visible, err := svc.List(ctx, employee("engineering"))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "engineering", visible[0].Department)

	all, err := svc.List(ctx, executive())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

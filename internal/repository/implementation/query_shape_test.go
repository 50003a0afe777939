package implementation

import (
	"context"
	"strings"
	"testing"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/model"
	"docvault-rag-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB builds statements without a live database so tests can assert on
// the SQL the repositories actually send.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=docvault dbname=docvault"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestSimilarityQueryOrdersBeforeTruncating(t *testing.T) {
	repo := NewChunkRepository(dryRunDB(t)).(*ChunkRepositoryImpl)

	vec := pgvector.NewVector([]float32{0.1, 0.2, 0.3})
	caller := entity.Identity{Role: entity.RoleManager, Department: "finance"}

	var rows []map[string]interface{}
	tx := repo.similarityQuery(context.Background(), vec, 5, caller).Find(&rows)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "ORDER BY document_chunks.embedding <=>")
	assert.Contains(t, sql, "document_chunks.id ASC")

	orderAt := strings.Index(sql, "ORDER BY")
	limitAt := strings.Index(sql, "LIMIT")
	require.Greater(t, orderAt, 0)
	require.Greater(t, limitAt, orderAt, "ranking must happen before truncation")

	// The visibility predicate is part of the same statement, ahead of both.
	whereAt := strings.Index(sql, "d.min_role <=")
	require.Greater(t, whereAt, 0)
	assert.Less(t, whereAt, orderAt)
	assert.Contains(t, sql, "d.department =")
}

func TestSimilarityQuerySkipsDepartmentForExecutive(t *testing.T) {
	repo := NewChunkRepository(dryRunDB(t)).(*ChunkRepositoryImpl)

	var rows []map[string]interface{}
	tx := repo.similarityQuery(context.Background(), pgvector.NewVector([]float32{0.5}), 5, entity.Identity{Role: entity.RoleExecutive}).Find(&rows)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.NotContains(t, sql, "d.department")
	assert.Contains(t, sql, "d.min_role <=")
	assert.Contains(t, sql, "ORDER BY")
}

func TestAuditTrailQueryOrdersNewestFirst(t *testing.T) {
	repo := NewAuditRepository(dryRunDB(t)).(*AuditRepositoryImpl)

	var rows []*model.AccessDecision
	tx := repo.trailQuery(context.Background(), specification.ByOutcome{Outcome: "denied"}).Find(&rows)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC")
	require.Greater(t, strings.Index(sql, "ORDER BY"), strings.Index(sql, "outcome"))
}

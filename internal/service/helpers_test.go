package service

import (
	"context"
	"errors"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/memory"
	"docvault-rag-be/pkg/embedding"
	"docvault-rag-be/pkg/extract"
	"docvault-rag-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fixedEmbedder returns the same vector for every input, optionally failing.
type fixedEmbedder struct {
	vector []float32
	fail   bool
}

func (f *fixedEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

// cannedLLM answers every prompt with a fixed string.
type cannedLLM struct {
	answer  string
	prompts []string
}

func (c *cannedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}

func (c *cannedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	for _, msg := range history {
		c.prompts = append(c.prompts, msg.Content)
	}
	return c.answer, nil
}

// recordingMailer captures credential mails instead of sending them.
type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendCredentials(toEmail, fullName, tempPassword string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

type testEnv struct {
	factory *memory.Factory
	pubSub  *gochannel.GoChannel
	audit   IAuditService
}

func newTestEnv() *testEnv {
	factory := memory.NewFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	audit := NewAuditService(factory, pubSub, nopLogger{})
	return &testEnv{
		factory: factory,
		pubSub:  pubSub,
		audit:   audit,
	}
}

func (e *testEnv) documentService() IDocumentService {
	return NewDocumentService(e.factory, &fixedEmbedder{vector: []float32{1, 0}}, extract.NewPlainTextExtractor(), e.audit)
}

func (e *testEnv) searchService() ISearchService {
	return NewSearchService(e.factory, &fixedEmbedder{vector: []float32{1, 0}}, e.audit, SearchConfig{})
}

func manager(dept string) entity.Identity {
	return entity.Identity{SubjectId: uuid.New(), Role: entity.RoleManager, Department: dept}
}

func employee(dept string) entity.Identity {
	return entity.Identity{SubjectId: uuid.New(), Role: entity.RoleEmployee, Department: dept}
}

func executive() entity.Identity {
	return entity.Identity{SubjectId: uuid.New(), Role: entity.RoleExecutive, Department: "management"}
}

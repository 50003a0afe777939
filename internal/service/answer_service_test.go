package service

import (
	"context"
	"strings"
	"testing"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/constant"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskAnswersFromVisibleContext(t *testing.T) {
	env := newTestEnv()
	seedSearchCorpus(t, env)

	model := &cannedLLM{answer: "We build software iteratively."}
	svc := NewAnswerService(env.searchService(), model, memory.NewSessionRepository(), env.audit)

	res, err := svc.Ask(context.Background(), employee("engineering"), &dto.AskRequest{Query: "How do we build software?"})
	require.NoError(t, err)
	assert.Equal(t, "We build software iteratively.", res.Answer)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, "Engineering Handbook", res.Sources[0].Title)
	assert.NotEmpty(t, res.SessionId)

	// Only visible chunks may reach the prompt.
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "How we build software.")
	assert.NotContains(t, model.prompts[0], "Compensation details.")
}

func TestAskWithoutAccessibleContextSkipsModel(t *testing.T) {
	env := newTestEnv()
	seedSearchCorpus(t, env)

	model := &cannedLLM{answer: "should never be used"}
	svc := NewAnswerService(env.searchService(), model, memory.NewSessionRepository(), env.audit)

	// Employee in a department with no documents at all.
	res, err := svc.Ask(context.Background(), employee("marketing"), &dto.AskRequest{Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, constant.NoAccessibleContextAnswer, res.Answer)
	assert.Empty(t, res.Sources)
	assert.Empty(t, model.prompts, "the model must not be called without context")
}

func TestAskDeniedWithoutIdentity(t *testing.T) {
	env := newTestEnv()
	seedSearchCorpus(t, env)

	model := &cannedLLM{answer: "should never be used"}
	svc := NewAnswerService(env.searchService(), model, memory.NewSessionRepository(), env.audit)

	_, err := svc.Ask(context.Background(), entity.Identity{}, &dto.AskRequest{Query: "anything"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Empty(t, model.prompts, "denied callers must not reach retrieval or the model")
}

func TestAskKeepsSessionHistoryPerUser(t *testing.T) {
	env := newTestEnv()
	seedSearchCorpus(t, env)

	sessions := memory.NewSessionRepository()
	svc := NewAnswerService(env.searchService(), &cannedLLM{answer: "ok"}, sessions, env.audit)
	ctx := context.Background()

	caller := employee("engineering")
	first, err := svc.Ask(ctx, caller, &dto.AskRequest{Query: "first question"})
	require.NoError(t, err)
	second, err := svc.Ask(ctx, caller, &dto.AskRequest{Query: "second question", SessionId: first.SessionId})
	require.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)

	session, found := sessions.Get(first.SessionId)
	require.True(t, found)
	assert.Len(t, session.History, 2)
	assert.Equal(t, "second question", session.LastQuery)

	// Another user presenting the same session id gets a fresh session.
	intruder := employee("engineering")
	third, err := svc.Ask(ctx, intruder, &dto.AskRequest{Query: "their question", SessionId: first.SessionId})
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionId, third.SessionId)
}

func TestAskPromptContainsQuestion(t *testing.T) {
	env := newTestEnv()
	seedSearchCorpus(t, env)

	model := &cannedLLM{answer: "ok"}
	svc := NewAnswerService(env.searchService(), model, memory.NewSessionRepository(), env.audit)

	_, err := svc.Ask(context.Background(), executive(), &dto.AskRequest{Query: "what are the salary bands?"})
	require.NoError(t, err)
	require.Len(t, model.prompts, 1)
	assert.True(t, strings.Contains(model.prompts[0], "what are the salary bands?"))
}

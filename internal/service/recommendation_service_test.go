package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRecommendationFixture(t *testing.T) (*chatFixture, *MockLLMProvider, IRecommendationService) {
	f := newChatFixture(t)
	llmMock := new(MockLLMProvider)
	svc := NewRecommendationService(f.svc, llmMock, f.publisher, logger.NewFromZap(zap.NewNop()), time.Second, nil)
	return f, llmMock, svc
}

func TestRecommendBuildsPromptFromProfile(t *testing.T) {
	_, llmMock, svc := newRecommendationFixture(t)

	llmMock.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "- Name: Dana") &&
			assert.Contains(t, p, "- Subject Interests: Chemistry") &&
			assert.Contains(t, p, "User Question: Which course next?")
	})).Return("  Try Lab Safety 101.\n", nil).Once()

	reply, err := svc.Recommend(context.Background(), "Which course next?", &entity.TeacherProfile{
		Name:             "Dana",
		SubjectInterests: []string{"Chemistry"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Try Lab Safety 101.", reply)
	llmMock.AssertExpectations(t)
}

func TestRecommendFailure(t *testing.T) {
	_, llmMock, svc := newRecommendationFixture(t)
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	_, err := svc.Recommend(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	_, err = svc.Recommend(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	llmMock.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRecommendAppliesTimeout(t *testing.T) {
	_, llmMock, svc := newRecommendationFixture(t)

	llmMock.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything).Return("ok", nil).Once()

	_, err := svc.Recommend(context.Background(), "hi", nil)
	require.NoError(t, err)
	llmMock.AssertExpectations(t)
}

func TestAskStoresBothTurns(t *testing.T) {
	f, llmMock, svc := newRecommendationFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, &dto.CreateSessionRequest{User: "u1"})
	require.NoError(t, err)
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("Consider Project-Based Learning.", nil).Once()

	res, err := svc.Ask(ctx, "u1", session.Id, &dto.AskRequest{
		Content: "What should I study?",
		Profile: &dto.TeacherProfile{Name: "Dana", GradeLevel: "Middle School"},
	})
	require.NoError(t, err)
	assert.True(t, res.Generated)
	assert.Equal(t, "user", res.Sent.Sender)
	assert.Equal(t, "What should I study?", res.Sent.Content)
	assert.Equal(t, "assistant", res.Reply.Sender)
	assert.Equal(t, "Consider Project-Based Learning.", res.Reply.Content)

	messages, err := f.svc.ListMessages(ctx, "u1", session.Id)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, res.Sent.Id, messages[0].Id)
	assert.Equal(t, res.Reply.Id, messages[1].Id)

	assert.Contains(t, f.publisher.types(), constant.EventChatRecommendationGenerated)
}

func TestAskStoresApologyOnFailure(t *testing.T) {
	f, llmMock, svc := newRecommendationFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, &dto.CreateSessionRequest{User: "u1"})
	require.NoError(t, err)
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("503")).Once()

	res, err := svc.Ask(ctx, "u1", session.Id, &dto.AskRequest{Content: "hi"})
	require.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, constant.ChatRecommendationFallbackMessage, res.Reply.Content)

	messages, err := f.svc.ListMessages(ctx, "u1", session.Id)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Contains(t, f.publisher.types(), constant.EventChatRecommendationFailed)
}

func TestAskRejectsBeforeWriting(t *testing.T) {
	f, llmMock, svc := newRecommendationFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, &dto.CreateSessionRequest{User: "u1"})
	require.NoError(t, err)

	_, err = svc.Ask(ctx, "u1", session.Id, &dto.AskRequest{Content: "  "})
	var verr *serverutils.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.Ask(ctx, "u1", session.Id+1, &dto.AskRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Ask(ctx, "u2", session.Id, &dto.AskRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	messages, err := f.svc.ListMessages(ctx, "u1", session.Id)
	require.NoError(t, err)
	assert.Empty(t, messages)
	llmMock.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRecommendServesRepeatsFromCache(t *testing.T) {
	f := newChatFixture(t)
	llmMock := new(MockLLMProvider)
	svc := NewRecommendationService(f.svc, llmMock, f.publisher, logger.NewFromZap(zap.NewNop()), time.Second, memory.NewReplyCache(time.Minute))
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("Try Lab Safety 101.", nil).Once()

	profile := &entity.TeacherProfile{Name: "Dana"}
	first, err := svc.Recommend(context.Background(), "Which course next?", profile)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), "Which course next?", profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	llmMock.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRecommendDoesNotCacheFailures(t *testing.T) {
	f := newChatFixture(t)
	llmMock := new(MockLLMProvider)
	svc := NewRecommendationService(f.svc, llmMock, f.publisher, logger.NewFromZap(zap.NewNop()), time.Second, memory.NewReplyCache(time.Minute))
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()
	llmMock.On("Generate", mock.Anything, mock.Anything).Return("ok", nil).Once()

	_, err := svc.Recommend(context.Background(), "hi", nil)
	require.Error(t, err)
	reply, err := svc.Recommend(context.Background(), "hi", nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", reply)
	llmMock.AssertNumberOfCalls(t, "Generate", 2)
}

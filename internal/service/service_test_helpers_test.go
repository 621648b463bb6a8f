package service

import (
	"context"
	"sync"
	"testing"

	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/internal/testutil"
	"course-advisor-be/pkg/events"
	"course-advisor-be/pkg/llm"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type chatFixture struct {
	db        *gorm.DB
	svc       IChatService
	publisher *recordingPublisher
}

func newChatFixture(t *testing.T) *chatFixture {
	db := testutil.NewTestDB(t)
	pub := &recordingPublisher{}
	return &chatFixture{
		db:        db,
		svc:       NewChatService(unitofwork.NewRepositoryFactory(db), pub, logger.NewFromZap(zap.NewNop())),
		publisher: pub,
	}
}

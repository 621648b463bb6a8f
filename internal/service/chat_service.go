package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/repository/contract"
	"course-advisor-be/internal/repository/specification"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/pkg/events"
)

var ErrSessionNotFound = errors.New("session not found")

type IChatService interface {
	ListSessions(ctx context.Context, request *dto.ListSessionsRequest) ([]*dto.Session, error)
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.Session, error)
	// The session-scoped operations take the caller's user id. A session owned by
	// someone else behaves as if it did not exist; an empty userId skips the check.
	DeleteSession(ctx context.Context, userId string, sessionId int64) (*dto.DeleteSessionResponse, error)
	ListMessages(ctx context.Context, userId string, sessionId int64) ([]*dto.Message, error)
	AppendMessage(ctx context.Context, userId string, sessionId int64, request *dto.AppendMessageRequest) (*dto.Message, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

// NewChatService builds the session/message service. publisherService may be nil.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (cs *chatService) ListSessions(ctx context.Context, request *dto.ListSessionsRequest) ([]*dto.Session, error) {
	if err := serverutils.ValidateRequest(request); err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: request.User},
		specification.NewestSessionsFirst{},
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	res := make([]*dto.Session, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, toSessionDto(s))
	}
	return res, nil
}

func (cs *chatService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.Session, error) {
	if err := serverutils.ValidateRequest(request); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := &entity.ChatSession{
		UserId:    request.User,
		Title:     title,
		CreatedAt: now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	cs.emit(ctx, constant.EventChatSessionCreated, map[string]interface{}{
		"session_id": session.Id,
		"user_id":    session.UserId,
		"title":      session.Title,
	})

	return toSessionDto(session), nil
}

// DeleteSession removes the session and, through the store, its messages.
// Unknown ids succeed as well.
func (cs *chatService) DeleteSession(ctx context.Context, userId string, sessionId int64) (*dto.DeleteSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if userId != "" {
		session, err := findOwnedSession(ctx, uow.ChatSessionRepository(), userId, sessionId)
		if err != nil {
			return nil, fmt.Errorf("find session %d: %w", sessionId, err)
		}
		if session == nil {
			return &dto.DeleteSessionResponse{Success: true}, nil
		}
	}

	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return nil, fmt.Errorf("delete session %d: %w", sessionId, err)
	}

	cs.emit(ctx, constant.EventChatSessionDeleted, map[string]interface{}{
		"session_id": sessionId,
	})

	return &dto.DeleteSessionResponse{Success: true}, nil
}

func (cs *chatService) ListMessages(ctx context.Context, userId string, sessionId int64) ([]*dto.Message, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if userId != "" {
		session, err := findOwnedSession(ctx, uow.ChatSessionRepository(), userId, sessionId)
		if err != nil {
			return nil, fmt.Errorf("find session %d: %w", sessionId, err)
		}
		if session == nil {
			return []*dto.Message{}, nil
		}
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.ChronologicalMessages{},
	)
	if err != nil {
		return nil, fmt.Errorf("list messages of session %d: %w", sessionId, err)
	}

	res := make([]*dto.Message, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageDto(m))
	}
	return res, nil
}

func (cs *chatService) AppendMessage(ctx context.Context, userId string, sessionId int64, request *dto.AppendMessageRequest) (*dto.Message, error) {
	if err := serverutils.ValidateRequest(request); err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := findOwnedSession(ctx, uow.ChatSessionRepository(), userId, sessionId)
	if err != nil {
		return nil, fmt.Errorf("find session %d: %w", sessionId, err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	message := &entity.ChatMessage{
		SessionId: session.Id,
		Sender:    request.Sender,
		Content:   request.Content,
		Timestamp: now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, fmt.Errorf("append message to session %d: %w", sessionId, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit message: %w", err)
	}

	cs.emit(ctx, constant.EventChatMessageAppended, map[string]interface{}{
		"session_id": message.SessionId,
		"message_id": message.Id,
		"sender":     message.Sender,
	})

	return toMessageDto(message), nil
}

// findOwnedSession returns nil when the session is missing or, for a non-empty
// userId, belongs to another user.
func findOwnedSession(ctx context.Context, repo contract.ChatSessionRepository, userId string, sessionId int64) (*entity.ChatSession, error) {
	specs := []specification.Specification{specification.ByID{ID: sessionId}}
	if userId != "" {
		specs = append(specs, specification.UserOwnedBy{UserID: userId})
	}
	return repo.FindOne(ctx, specs...)
}

// now is truncated to what timestamptz stores so returned records match later reads.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// emit publishes a domain event. Failures are logged and never fail the caller.
func (cs *chatService) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if cs.publisherService == nil {
		return
	}
	if err := cs.publisherService.Publish(ctx, events.New(eventType, data)); err != nil {
		cs.logger.Warn("CHAT", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toSessionDto(s *entity.ChatSession) *dto.Session {
	return &dto.Session{
		Id:        s.Id,
		User:      s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
	}
}

func toMessageDto(m *entity.ChatMessage) *dto.Message {
	return &dto.Message{
		Id:        m.Id,
		SessionId: m.SessionId,
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

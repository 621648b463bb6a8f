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
	"course-advisor-be/internal/repository/memory"
	"course-advisor-be/pkg/events"
	"course-advisor-be/pkg/llm"
	"course-advisor-be/pkg/recommendation/prompt"
)

var ErrGenerationFailed = errors.New("generation failed")

type IRecommendationService interface {
	// Recommend asks the language model for course advice tailored to the profile.
	Recommend(ctx context.Context, question string, profile *entity.TeacherProfile) (string, error)
	// Ask records the question, obtains a reply and records it, in that order.
	Ask(ctx context.Context, userId string, sessionId int64, request *dto.AskRequest) (*dto.AskResponse, error)
}

type recommendationService struct {
	chatService      IChatService
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	logger           logger.ILogger
	timeout          time.Duration
	replyCache       *memory.ReplyCache
}

func NewRecommendationService(
	chatService IChatService,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
	timeout time.Duration,
	replyCache *memory.ReplyCache,
) IRecommendationService {
	return &recommendationService{
		chatService:      chatService,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		logger:           log,
		timeout:          timeout,
		replyCache:       replyCache,
	}
}

func (rs *recommendationService) Recommend(ctx context.Context, question string, profile *entity.TeacherProfile) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", ErrGenerationFailed)
	}

	if rs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.timeout)
		defer cancel()
	}

	text := prompt.NewCourseAdvisorBuilder(profile, question).Build()
	if cached, found := rs.replyCache.Get(text); found {
		rs.logger.Debug("RECOMMENDATION", "Reply served from cache", nil)
		return cached, nil
	}

	start := time.Now()
	reply, err := rs.llmProvider.Generate(ctx, text)
	if err != nil {
		rs.logger.Error("RECOMMENDATION", "LLM generation failed", map[string]interface{}{
			"error":      err.Error(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	rs.logger.Debug("RECOMMENDATION", "LLM generation finished", map[string]interface{}{
		"latency_ms":   time.Since(start).Milliseconds(),
		"prompt_chars": len(text),
		"reply_chars":  len(reply),
	})
	reply = strings.TrimSpace(reply)
	rs.replyCache.Save(text, reply)
	return reply, nil
}

func (rs *recommendationService) Ask(ctx context.Context, userId string, sessionId int64, request *dto.AskRequest) (*dto.AskResponse, error) {
	if err := serverutils.ValidateRequest(request); err != nil {
		return nil, err
	}

	sent, err := rs.chatService.AppendMessage(ctx, userId, sessionId, &dto.AppendMessageRequest{
		Sender:  constant.ChatMessageRoleUser,
		Content: request.Content,
	})
	if err != nil {
		return nil, err
	}

	generated := true
	replyText, err := rs.Recommend(ctx, request.Content, toProfileEntity(request.Profile))
	if err != nil {
		generated = false
		replyText = constant.ChatRecommendationFallbackMessage
		rs.emit(ctx, constant.EventChatRecommendationFailed, map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	} else {
		rs.emit(ctx, constant.EventChatRecommendationGenerated, map[string]interface{}{
			"session_id":  sessionId,
			"reply_chars": len(replyText),
		})
	}

	reply, err := rs.chatService.AppendMessage(ctx, userId, sessionId, &dto.AppendMessageRequest{
		Sender:  constant.ChatMessageRoleAssistant,
		Content: replyText,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		Sent:      sent,
		Reply:     reply,
		Generated: generated,
	}, nil
}

func (rs *recommendationService) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if rs.publisherService == nil {
		return
	}
	if err := rs.publisherService.Publish(ctx, events.New(eventType, data)); err != nil {
		rs.logger.Warn("RECOMMENDATION", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toProfileEntity(p *dto.TeacherProfile) *entity.TeacherProfile {
	if p == nil {
		return nil
	}
	return &entity.TeacherProfile{
		Name:             p.Name,
		SubjectInterests: p.SubjectInterests,
		SubjectArea:      p.SubjectArea,
		GradeLevel:       p.GradeLevel,
		EducationLevels:  p.EducationLevels,
		Experience:       p.Experience,
		SchoolType:       p.SchoolType,
		Language:         p.Language,
		SelectedCourses:  p.SelectedCourses,
	}
}

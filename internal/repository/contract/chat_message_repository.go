package contract

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: messages are never updated or deleted one by one.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}

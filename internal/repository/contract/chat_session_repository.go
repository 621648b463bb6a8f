package contract

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// Delete removes the session; its messages go with it through the foreign key.
	// Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
}

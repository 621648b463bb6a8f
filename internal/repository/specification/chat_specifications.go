package specification

import (
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID int64
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.ChatSessionID)
}

type UserOwnedBy struct {
	UserID string
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// NewestSessionsFirst orders sessions by creation time, newest first, id breaking ties.
type NewestSessionsFirst struct{}

func (s NewestSessionsFirst) Apply(db *gorm.DB) *gorm.DB {
	db = OrderBy{Field: "created_at", Desc: true}.Apply(db)
	return OrderBy{Field: "id", Desc: true}.Apply(db)
}

// ChronologicalMessages orders messages oldest first, id breaking ties.
type ChronologicalMessages struct{}

func (s ChronologicalMessages) Apply(db *gorm.DB) *gorm.DB {
	db = OrderBy{Field: "timestamp", Desc: false}.Apply(db)
	return OrderBy{Field: "id", Desc: false}.Apply(db)
}

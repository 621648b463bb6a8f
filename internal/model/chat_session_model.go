package model

import (
	"time"
)

type ChatSession struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	UserId    string    `gorm:"type:text;not null;index:idx_sessions_user_created,priority:1"` // Opaque id from the identity provider
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_sessions_user_created,priority:2"`
}

func (ChatSession) TableName() string {
	return "sessions"
}

package model

import (
	"time"
)

type ChatMessage struct {
	Id        int64        `gorm:"primaryKey;autoIncrement"`
	SessionId int64        `gorm:"not null;index:idx_messages_session_timestamp,priority:1"`
	Session   *ChatSession `gorm:"foreignKey:SessionId;references:Id;constraint:OnDelete:CASCADE"`
	Sender    string       `gorm:"type:text;not null;check:chk_messages_sender,sender IN ('user','assistant')"`
	Content   string       `gorm:"type:text;not null"`
	Timestamp time.Time    `gorm:"column:timestamp;autoCreateTime;index:idx_messages_session_timestamp,priority:2"`
}

func (ChatMessage) TableName() string {
	return "messages"
}

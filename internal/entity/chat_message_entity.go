package entity

import (
	"time"
)

type ChatMessage struct {
	Id        int64
	SessionId int64
	Sender    string
	Content   string
	Timestamp time.Time
}

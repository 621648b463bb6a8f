package entity

import (
	"time"
)

type ChatSession struct {
	Id        int64
	UserId    string
	Title     string
	CreatedAt time.Time
}

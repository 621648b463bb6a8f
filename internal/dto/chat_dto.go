package dto

import "time"

// Session is the wire shape of a chat session.
type Session struct {
	Id        int64     `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is the wire shape of a chat message.
type Message struct {
	Id        int64     `json:"id"`
	SessionId int64     `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ListSessionsRequest struct {
	User string `query:"user" json:"user" validate:"notblank"`
}

type CreateSessionRequest struct {
	User  string `json:"user" validate:"notblank"`
	Title string `json:"title"`
}

type AppendMessageRequest struct {
	Sender  string `json:"sender" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"notblank"`
}

type DeleteSessionResponse struct {
	Success bool `json:"success"`
}

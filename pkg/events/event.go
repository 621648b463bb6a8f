package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.session.created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New stamps an event with the current UTC time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Envelope is the wire form shared by the in-process bus and NATS.
type Envelope struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurredAt"`
}

func (e Envelope) EventType() string {
	return e.Type
}

func (e Envelope) Payload() map[string]interface{} {
	return e.Data
}

func (e Envelope) Timestamp() time.Time {
	return e.OccurredAt
}

// Wrap assigns an id unless the event already is an Envelope.
func Wrap(event Event) Envelope {
	if env, ok := event.(Envelope); ok {
		return env
	}
	data := event.Payload()
	if data == nil {
		data = map[string]interface{}{}
	}
	return Envelope{
		Id:         uuid.NewString(),
		Type:       event.EventType(),
		Data:       data,
		OccurredAt: event.Timestamp(),
	}
}

func Marshal(event Event) ([]byte, error) {
	return json.Marshal(Wrap(event))
}

func Unmarshal(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode event: missing type")
	}
	return env, nil
}

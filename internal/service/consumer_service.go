package service

import (
	"context"
	"time"

	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder relays bus events to an external stream (NATS in production).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	auditLogger logger.ILogger
	forwarder   EventForwarder
}

// NewConsumerService wires the audit trail. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	auditLogger logger.ILogger,
	forwarder EventForwarder,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		auditLogger: auditLogger,
		forwarder:   forwarder,
	}
}

// Consume subscribes and processes messages in the background until ctx is done
// or the subscriber is closed.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	env, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.auditLogger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.auditLogger.Info("EVENTS", env.Type, map[string]interface{}{
		"event_id":    env.Id,
		"occurred_at": env.OccurredAt.Format(time.RFC3339Nano),
		"data":        env.Data,
	})

	if cs.forwarder != nil {
		fctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := cs.forwarder.Publish(fctx, env)
		cancel()
		if err != nil {
			// Audit line is already written; NATS is best effort.
			cs.auditLogger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
				"event_id": env.Id,
				"type":     env.Type,
				"error":    err.Error(),
			})
		}
	}

	msg.Ack()
}

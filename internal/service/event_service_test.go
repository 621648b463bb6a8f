package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingForwarder struct {
	calls chan events.Event
}

func (f *failingForwarder) Publish(ctx context.Context, event events.Event) error {
	f.calls <- event
	return errors.New("nats unavailable")
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	forwarder := &failingForwarder{calls: make(chan events.Event, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, constant.ChatEventsTopic, logger.NewFromZap(zap.New(core)), forwarder)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(constant.ChatEventsTopic, pubSub)
	require.NoError(t, publisher.Publish(ctx, events.New(constant.EventChatSessionCreated, map[string]interface{}{
		"session_id": 1,
	})))

	select {
	case evt := <-forwarder.calls:
		assert.Equal(t, constant.EventChatSessionCreated, evt.EventType())
		assert.Equal(t, float64(1), evt.Payload()["session_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}

	assert.Eventually(t, func() bool {
		return logs.FilterMessage(constant.EventChatSessionCreated).Len() == 1 &&
			logs.FilterMessage("Failed to forward event").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerAcksGarbage(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, NewConsumerService(pubSub, "t", logger.NewFromZap(zap.New(core)), nil).Consume(ctx))
	require.NoError(t, pubSub.Publish("t", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Dropping undecodable event").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

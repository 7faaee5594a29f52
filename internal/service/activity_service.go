package service

import (
	"context"
	"encoding/json"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/pkg/logger"
	"codecollab-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventExporter ships activity events out of the process.
type EventExporter interface {
	Publish(ctx context.Context, event events.Event) error
}

// ActivityPublisher puts room activity on the in-process bus.
type ActivityPublisher struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewActivityPublisher(publisher message.Publisher, topic string, log logger.ILogger) *ActivityPublisher {
	return &ActivityPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (p *ActivityPublisher) Emit(event events.Event) {
	payload, err := json.Marshal(dto.ActivityMessage{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		p.logger.Error("ActivityPublisher", "Failed to encode event", map[string]interface{}{
			"type": event.EventType(), "error": err,
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Warn("ActivityPublisher", "Failed to publish event", map[string]interface{}{
			"type": event.EventType(), "error": err.Error(),
		})
	}
}

type IActivityConsumer interface {
	Consume(ctx context.Context) error
}

type activityConsumer struct {
	subscriber message.Subscriber
	topic      string
	exporter   EventExporter
	logger     logger.ILogger
}

// NewActivityConsumer logs every activity event and forwards it to exporter
// when one is configured.
func NewActivityConsumer(subscriber message.Subscriber, topic string, exporter EventExporter, log logger.ILogger) IActivityConsumer {
	return &activityConsumer{
		subscriber: subscriber,
		topic:      topic,
		exporter:   exporter,
		logger:     log,
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *activityConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Warn("ActivityConsumer", "Dropping malformed activity", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	c.logger.Info("ActivityConsumer", payload.Type, payload.Payload)

	if c.exporter == nil {
		msg.Ack()
		return
	}

	event := events.BaseEvent{
		Type:       payload.Type,
		Data:       payload.Payload,
		OccurredAt: payload.OccurredAt,
	}
	// Export is best effort; a NATS outage must not wedge the bus with redeliveries.
	if err := c.exporter.Publish(ctx, event); err != nil {
		c.logger.Error("ActivityConsumer", "Export failed", map[string]interface{}{
			"type": payload.Type, "error": err,
		})
	}
	msg.Ack()
}

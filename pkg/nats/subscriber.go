package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"codecollab-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one delivered event. A non-nil error requests redelivery.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber reads room activity back from JetStream.
type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe attaches handler to subject (for example "rooms.>"). With an empty
// durableName the consumer is ephemeral and starts at new messages only.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) (jetstream.ConsumeContext, error) {
	cfg := jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durableName == "" {
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		var body wireEvent
		if err := json.Unmarshal(msg.Data(), &body); err != nil {
			msg.Term()
			return
		}

		event := events.BaseEvent{
			Type:       body.Type,
			Data:       body.Payload,
			OccurredAt: body.OccurredAt,
		}
		if err := handler(ctx, event); err != nil {
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}
	return cc, nil
}

func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}

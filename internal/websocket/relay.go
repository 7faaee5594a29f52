package websocket

import (
	"context"
	"encoding/json"

	"codecollab-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const relayChannel = "room_events"

type relayEnvelope struct {
	Origin  string          `json:"origin"`
	RoomID  string          `json:"room_id"`
	Message json.RawMessage `json:"message"`
}

// RedisRelay fans room traffic out to every instance subscribed to the same
// Redis channel. Messages published by this instance are ignored on receipt.
type RedisRelay struct {
	rdb     *redis.Client
	origin  string
	channel string
	logger  logger.ILogger
}

func NewRedisRelay(rdb *redis.Client, origin string, log logger.ILogger) *RedisRelay {
	return &RedisRelay{
		rdb:     rdb,
		origin:  origin,
		channel: relayChannel,
		logger:  log,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, roomID string, data []byte) {
	payload, err := json.Marshal(relayEnvelope{Origin: r.origin, RoomID: roomID, Message: data})
	if err != nil {
		return
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warn("RedisRelay", "Publish failed", map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		})
	}
}

// Subscribe blocks until ctx is done, handing every foreign message to deliver.
func (r *RedisRelay) Subscribe(ctx context.Context, deliver func(roomID string, data []byte)) {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	r.logger.Info("RedisRelay", "Subscribed to room channel", map[string]interface{}{
		"channel": r.channel,
		"origin":  r.origin,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env relayEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warn("RedisRelay", "Malformed relay payload", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == r.origin || env.RoomID == "" {
				continue
			}
			deliver(env.RoomID, env.Message)
		}
	}
}

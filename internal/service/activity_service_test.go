package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"codecollab-be/internal/pkg/logger"
	"codecollab-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExporter struct {
	mu     sync.Mutex
	events []events.Event
}

func (e *recordingExporter) Publish(_ context.Context, event events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingExporter) snapshot() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]events.Event(nil), e.events...)
}

func TestActivityFlowsFromPublisherToExporter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	exporter := &recordingExporter{}
	consumer := NewActivityConsumer(pubSub, "activity", exporter, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewActivityPublisher(pubSub, "activity", logger.NewNopLogger())
	publisher.Emit(events.NewRoomEvent("ROOM_JOINED", "ABC123", "s1", "alice", nil))
	publisher.Emit(events.NewRoomEvent("CODE_EXECUTED", "ABC123", "s1", "alice", map[string]interface{}{"language": "cpp"}))

	require.Eventually(t, func() bool { return len(exporter.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)

	// the bus does not order deliveries
	byType := make(map[string]events.Event)
	for _, e := range exporter.snapshot() {
		byType[e.EventType()] = e
	}
	require.Contains(t, byType, "ROOM_JOINED")
	require.Contains(t, byType, "CODE_EXECUTED")
	assert.Equal(t, "ABC123", byType["ROOM_JOINED"].Payload()["room_id"])
	assert.Equal(t, "alice", byType["ROOM_JOINED"].Payload()["username"])
	assert.Equal(t, "cpp", byType["CODE_EXECUTED"].Payload()["language"])
	assert.False(t, byType["CODE_EXECUTED"].Timestamp().IsZero())
}

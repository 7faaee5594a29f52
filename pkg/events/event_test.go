package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRoomEvent(t *testing.T) {
	before := time.Now()
	e := NewRoomEvent(CodeExecuted, "ABC123", "s1", "alice", map[string]interface{}{
		"language": "cpp",
		"room_id":  "spoofed",
	})

	assert.Equal(t, CodeExecuted, e.EventType())
	assert.Equal(t, "ABC123", RoomID(e))
	assert.Equal(t, "alice", Username(e))
	assert.Equal(t, "s1", e.Payload()["session_id"])
	assert.Equal(t, "cpp", e.Payload()["language"])
	assert.False(t, e.Timestamp().Before(before))
}

func TestAccessorsOnForeignPayload(t *testing.T) {
	e := BaseEvent{Type: RoomLeft, Data: map[string]interface{}{"room_id": 42}}

	assert.Empty(t, RoomID(e))
	assert.Empty(t, Username(e))
	assert.Empty(t, RoomID(BaseEvent{}))
}

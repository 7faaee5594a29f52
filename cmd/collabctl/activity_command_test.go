package main

import (
	"bytes"
	"testing"
	"time"

	"codecollab-be/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestRenderEvent(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	renderEvent(&out, events.BaseEvent{
		Type:       events.RoomJoined,
		Data:       map[string]interface{}{"room_id": "ABC123", "username": "alice"},
		OccurredAt: time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC),
	})

	assert.Equal(t, "14:03:09 ROOM_JOINED   room=ABC123 user=alice\n", out.String())
}

package events

import "time"

// Room activity types. They double as the NATS subject suffix.
const (
	RoomJoined   = "ROOM_JOINED"
	RoomLeft     = "ROOM_LEFT"
	CodeExecuted = "CODE_EXECUTED"
)

// Event is something that happened in a room, as carried by the activity bus
// and the JetStream export.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the concrete Event used on both sides of the wire.
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

// NewRoomEvent builds an event for one session in a room. extra is merged into
// the payload and may be nil; it cannot override the identifying keys.
func NewRoomEvent(eventType, roomID, sessionID, username string, extra map[string]interface{}) Event {
	data := make(map[string]interface{}, len(extra)+3)
	for k, v := range extra {
		data[k] = v
	}
	data["room_id"] = roomID
	data["session_id"] = sessionID
	data["username"] = username

	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// RoomID reads the room id from a payload, "" when absent.
func RoomID(e Event) string {
	id, _ := e.Payload()["room_id"].(string)
	return id
}

// Username reads the acting user's display name from a payload, "" when absent.
func Username(e Event) string {
	name, _ := e.Payload()["username"].(string)
	return name
}

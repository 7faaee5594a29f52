package dto

import "time"

// ActivityMessage is the payload carried on the in-process activity topic.
type ActivityMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

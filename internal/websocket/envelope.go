package websocket

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Kind tags every envelope on the wire.
type Kind string

const (
	KindCursorUpdate    Kind = "cursor_update"
	KindCodeUpdate      Kind = "code_update"
	KindExecuteCode     Kind = "execute_code"
	KindChatMessage     Kind = "chat_message"
	KindJoinNotice      Kind = "join_notice"
	KindLeaveNotice     Kind = "leave_notice"
	KindExecutionResult Kind = "execution_result"
	KindExecutionError  Kind = "execution_error"

	// join and leave notices travel as system messages
	KindSystemMessage Kind = "system_message"
)

// TimestampLayout renders chat and notice times as "hh:mm AM/PM".
const TimestampLayout = "03:04 PM"

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrUnknownKind       = errors.New("unknown envelope kind")
	ErrMissingField      = errors.New("missing required field")
)

// Inbound is a decoded client envelope. Only the fields of its kind are set.
type Inbound struct {
	Type     Kind            `json:"type"`
	Position json.RawMessage `json:"position,omitempty"`
	Code     *string         `json:"code,omitempty"`
	Language string          `json:"language,omitempty"`
	Message  *string         `json:"message,omitempty"`
}

// DecodeInbound parses a client frame and checks the fields its kind requires.
func DecodeInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, ErrMalformedEnvelope
	}

	switch in.Type {
	case KindCursorUpdate:
		if isAbsent(in.Position) {
			return Inbound{}, ErrMissingField
		}
	case KindCodeUpdate:
		if in.Code == nil {
			return Inbound{}, ErrMissingField
		}
	case KindChatMessage:
		if in.Message == nil {
			return Inbound{}, ErrMissingField
		}
	case KindExecuteCode:
		if in.Code == nil {
			return Inbound{}, ErrMissingField
		}
		if in.Language == "" {
			in.Language = "python"
		}
	default:
		return Inbound{}, ErrUnknownKind
	}
	return in, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Server -> Client envelopes

type CursorUpdateMessage struct {
	Type     Kind            `json:"type"`
	Username string          `json:"username"`
	Position json.RawMessage `json:"position"`
}

type CodeUpdateMessage struct {
	Type Kind   `json:"type"`
	Code string `json:"code"`
}

type ChatMessageOut struct {
	Type      Kind   `json:"type"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type SystemMessageOut struct {
	Type      Kind   `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ExecutionResultMessage struct {
	Type   Kind   `json:"type"`
	Output string `json:"output"`
}

type ExecutionErrorMessage struct {
	Type  Kind   `json:"type"`
	Error string `json:"error"`
}

func NewCursorUpdate(username string, position json.RawMessage) CursorUpdateMessage {
	return CursorUpdateMessage{Type: KindCursorUpdate, Username: username, Position: position}
}

func NewCodeUpdate(code string) CodeUpdateMessage {
	return CodeUpdateMessage{Type: KindCodeUpdate, Code: code}
}

func NewChatMessage(message, username, timestamp string) ChatMessageOut {
	return ChatMessageOut{Type: KindChatMessage, Message: message, Username: username, Timestamp: timestamp}
}

// NewNotice builds the system message announcing a join or leave.
func NewNotice(kind Kind, username, timestamp string) SystemMessageOut {
	verb := "joined"
	if kind == KindLeaveNotice {
		verb = "left"
	}
	return SystemMessageOut{
		Type:      KindSystemMessage,
		Message:   username + " " + verb + " the room",
		Timestamp: timestamp,
	}
}

func NewExecutionResult(output string) ExecutionResultMessage {
	return ExecutionResultMessage{Type: KindExecutionResult, Output: output}
}

func NewExecutionError(err string) ExecutionErrorMessage {
	return ExecutionErrorMessage{Type: KindExecutionError, Error: err}
}

// Stamper formats the current wall-clock time for chat and notices.
type Stamper func() string

// NewStamper renders now() in loc using TimestampLayout.
func NewStamper(now func() time.Time, loc *time.Location) Stamper {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return func() string {
		return now().In(loc).Format(TimestampLayout)
	}
}

package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    Kind
		wantErr error
	}{
		{"cursor", `{"type":"cursor_update","position":{"line":3,"ch":1}}`, KindCursorUpdate, nil},
		{"cursor without position", `{"type":"cursor_update"}`, "", ErrMissingField},
		{"cursor with null position", `{"type":"cursor_update","position":null}`, "", ErrMissingField},
		{"code", `{"type":"code_update","code":""}`, KindCodeUpdate, nil},
		{"code without code", `{"type":"code_update"}`, "", ErrMissingField},
		{"chat", `{"type":"chat_message","message":"hi"}`, KindChatMessage, nil},
		{"chat without message", `{"type":"chat_message"}`, "", ErrMissingField},
		{"execute", `{"type":"execute_code","code":"print(1)","language":"cpp"}`, KindExecuteCode, nil},
		{"execute without code", `{"type":"execute_code","language":"cpp"}`, "", ErrMissingField},
		{"unknown kind", `{"type":"dance"}`, "", ErrUnknownKind},
		{"server-only kind", `{"type":"execution_result","output":"x"}`, "", ErrUnknownKind},
		{"not json", `hello`, "", ErrMalformedEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeInbound([]byte(tt.frame))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Type)
		})
	}
}

func TestDecodeInboundDefaultsLanguage(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"execute_code","code":"print(1)"}`))
	require.NoError(t, err)
	assert.Equal(t, "python", in.Language)
}

func TestCursorPositionIsForwardedVerbatim(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"cursor_update","position":{"line":3,"ch":1}}`))
	require.NoError(t, err)

	data, err := json.Marshal(NewCursorUpdate("alice", in.Position))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"cursor_update","username":"alice","position":{"line":3,"ch":1}}`, string(data))
}

func TestNewNotice(t *testing.T) {
	join := NewNotice(KindJoinNotice, "alice", "09:05 AM")
	assert.Equal(t, KindSystemMessage, join.Type)
	assert.Equal(t, "alice joined the room", join.Message)
	assert.Equal(t, "09:05 AM", join.Timestamp)

	leave := NewNotice(KindLeaveNotice, "Anonymous", "09:05 PM")
	assert.Equal(t, "Anonymous left the room", leave.Message)
}

func TestStamper(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 21, 7, 0, 0, time.UTC)
	stamp := NewStamper(func() time.Time { return fixed }, time.UTC)
	assert.Equal(t, "09:07 PM", stamp())

	morning := NewStamper(func() time.Time { return fixed.Add(-12 * time.Hour) }, time.UTC)
	assert.Equal(t, "09:07 AM", morning())
}

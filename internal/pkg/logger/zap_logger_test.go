package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.log")
	l := NewIsolatedLogger(path)

	l.Debug("ROOM", "member joined", map[string]interface{}{"room_id": "ABC123"})
	l.Error("ROOM", "delivery failed", map[string]interface{}{"error": errors.New("send buffer full")})
	l.Info("ROOM", "no details", nil)
	require.NoError(t, l.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 3)

	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "member joined", lines[0]["message"])
	assert.Equal(t, "ROOM", lines[0]["module"])
	assert.Equal(t, "ABC123", lines[0]["details"].(map[string]interface{})["room_id"])

	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "send buffer full", lines[1]["error"])

	assert.Empty(t, lines[2]["details"])
}

func TestZapLoggerFileSkipsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Debug("SERVER", "noise", nil)
	l.Warn("SERVER", "kept", nil)
	_ = l.Sync()

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Error("ANY", "dropped", map[string]interface{}{"error": errors.New("x")})
	})
	assert.NoError(t, l.Sync())
}

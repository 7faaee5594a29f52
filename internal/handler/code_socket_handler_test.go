package handler

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"codecollab-be/internal/pkg/logger"
	internalWS "codecollab-be/internal/websocket"
	"codecollab-be/pkg/sandbox"

	"github.com/gofiber/fiber/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRooms map[string]bool

func (r staticRooms) Exists(_ context.Context, name string) (bool, error) {
	return r[name], nil
}

type tokenNames map[string]string

func (n tokenNames) DisplayName(_ context.Context, token string) string {
	if name, ok := n[token]; ok {
		return name
	}
	return "Anonymous"
}

type upperExecutor struct{}

func (upperExecutor) Execute(_ context.Context, code, language string) string {
	return language + " ran " + code
}

func startServer(t *testing.T) (string, *internalWS.Hub) {
	t.Helper()

	hub := internalWS.NewHub(logger.NewNopLogger(), internalWS.WithStamper(func() string { return "01:02 PM" }))
	pool := sandbox.NewPool(upperExecutor{}, 2, 2)
	h := NewCodeSocketHandler(
		hub,
		pool,
		staticRooms{"ROOM42": true},
		tokenNames{"alice-token": "alice"},
		internalWS.SessionConfig{},
		logger.NewNopLogger(),
	)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h.RegisterRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)

	t.Cleanup(func() {
		hub.Close()
		pool.Close()
		app.Shutdown()
	})
	return ln.Addr().String(), hub
}

func dial(t *testing.T, addr, path string, header http.Header) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial("ws://"+addr+path, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *gorilla.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var v map[string]interface{}
	require.NoError(t, conn.ReadJSON(&v))
	return v
}

func TestCodeSocketRejectsUnknownRoom(t *testing.T) {
	addr, _ := startServer(t)

	for _, path := range []string{"/ws/code/MISSING", "/ws/code/bad-name"} {
		_, resp, err := gorilla.DefaultDialer.Dial("ws://"+addr+path, nil)
		require.Error(t, err, path)
		require.NotNil(t, resp, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestCodeSocketRequiresUpgrade(t *testing.T) {
	addr, _ := startServer(t)

	resp, err := http.Get("http://" + addr + "/ws/code/ROOM42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestCodeSocketCollaboration(t *testing.T) {
	addr, hub := startServer(t)

	alice := dial(t, addr, "/ws/code/ROOM42?token=alice-token", nil)
	require.Eventually(t, func() bool {
		_, sessions := hub.Stats()
		return sessions == 1
	}, 2*time.Second, 5*time.Millisecond)

	header := http.Header{}
	header.Set("Authorization", "Bearer unknown-token")
	guest := dial(t, addr, "/ws/code/ROOM42", header)

	notice := readJSON(t, alice)
	assert.Equal(t, "system_message", notice["type"])
	assert.Equal(t, "Anonymous joined the room", notice["message"])
	assert.Equal(t, "01:02 PM", notice["timestamp"])

	require.NoError(t, alice.WriteJSON(map[string]interface{}{"type": "code_update", "code": "print(42)"}))
	update := readJSON(t, guest)
	assert.Equal(t, "code_update", update["type"])
	assert.Equal(t, "print(42)", update["code"])

	require.NoError(t, alice.WriteJSON(map[string]interface{}{"type": "chat_message", "message": "hey"}))
	for _, conn := range []*gorilla.Conn{alice, guest} {
		chat := readJSON(t, conn)
		assert.Equal(t, "chat_message", chat["type"])
		assert.Equal(t, "alice", chat["username"])
		assert.Equal(t, "hey", chat["message"])
	}

	require.NoError(t, guest.WriteJSON(map[string]interface{}{"type": "execute_code", "code": "1+1", "language": "javascript"}))
	result := readJSON(t, guest)
	assert.Equal(t, "execution_result", result["type"])
	assert.Equal(t, "javascript ran 1+1", result["output"])

	require.NoError(t, guest.Close())
	left := readJSON(t, alice)
	assert.Equal(t, "Anonymous left the room", left["message"])
}

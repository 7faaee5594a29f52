package websocket

import "codecollab-be/internal/pkg/logger"

// ServeWs runs one session on conn until the peer goes away.
func ServeWs(hub *Hub, executor Submitter, conn Conn, roomID, displayName string, cfg SessionConfig, log logger.ILogger) {
	session := NewSession(conn, hub, executor, roomID, displayName, cfg, log)
	session.Serve()
}

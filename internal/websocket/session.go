package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"codecollab-be/internal/pkg/logger"
	"codecollab-be/pkg/events"
	"codecollab-be/pkg/sandbox"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait             = 10 * time.Second
	pongWait              = 60 * time.Second
	pingPeriod            = (pongWait * 9) / 10
	defaultMaxMessageSize = 512 * 1024
	defaultSendBuffer     = 256
)

// Conn is the part of a websocket connection a Session drives.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Submitter schedules code executions off the session's read loop.
type Submitter interface {
	Submit(code, language string) (*sandbox.Task, error)
}

// State of a session. Connecting -> Joined -> Closed, never backwards.
type State int

const (
	StateConnecting State = iota
	StateJoined
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateJoined:
		return "joined"
	default:
		return "closed"
	}
}

// SessionConfig carries the per-connection limits.
type SessionConfig struct {
	SendBuffer     int
	MaxMessageSize int64
}

// Session is one client connection bound to one room.
type Session struct {
	id          string
	roomID      string
	displayName string
	createdAt   time.Time

	conn     Conn
	hub      *Hub
	executor Submitter
	logger   logger.ILogger
	cfg      SessionConfig

	send chan []byte
	done chan struct{}

	mu        sync.Mutex
	state     State
	leaveOnce sync.Once
}

// NewSession binds conn to roomID. displayName is fixed for the session's lifetime.
func NewSession(conn Conn, hub *Hub, executor Submitter, roomID, displayName string, cfg SessionConfig, log logger.ILogger) *Session {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}
	return &Session{
		id:          uuid.NewString(),
		roomID:      roomID,
		displayName: displayName,
		createdAt:   time.Now(),
		conn:        conn,
		hub:         hub,
		executor:    executor,
		logger:      log,
		cfg:         cfg,
		send:        make(chan []byte, cfg.SendBuffer),
		done:        make(chan struct{}),
		state:       StateConnecting,
	}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) DisplayName() string { return s.displayName }
func (s *Session) RoomID() string      { return s.roomID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Deliver queues data for the write pump without blocking.
func (s *Session) Deliver(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrMemberClosed
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close moves the session to Closed and drops the connection. Safe to call repeatedly.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	close(s.done)
	s.mu.Unlock()

	s.conn.Close()
}

// Serve joins the room and pumps the connection until it closes. It blocks for
// the lifetime of the connection.
func (s *Session) Serve() {
	if err := s.join(); err != nil {
		s.logger.Error("Session", "Join failed", map[string]interface{}{
			"room_id": s.roomID, "session_id": s.id, "error": err,
		})
		s.Close()
		return
	}

	go s.writePump()
	s.readPump()
}

func (s *Session) join() error {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return ErrMemberClosed
	}
	s.state = StateJoined
	s.mu.Unlock()

	return s.hub.Join(s.roomID, s)
}

func (s *Session) leave() {
	s.leaveOnce.Do(func() {
		s.hub.Leave(s.roomID, s)
	})
}

// readPump pumps messages from the websocket connection to the hub.
func (s *Session) readPump() {
	defer func() {
		s.leave()
		s.Close()
	}()

	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Session", "Connection closed unexpectedly", map[string]interface{}{
					"room_id": s.roomID, "session_id": s.id, "error": err.Error(),
				})
			}
			return
		}
		s.handle(data)
	}
}

// handle routes one inbound frame. Frames that do not decode are dropped.
func (s *Session) handle(data []byte) {
	if s.State() != StateJoined {
		return
	}

	in, err := DecodeInbound(data)
	if err != nil {
		s.logger.Debug("Session", "Dropped inbound frame", map[string]interface{}{
			"room_id": s.roomID, "session_id": s.id, "error": err.Error(),
		})
		return
	}

	switch in.Type {
	case KindCursorUpdate:
		s.broadcast(NewCursorUpdate(s.displayName, in.Position), s.id)
	case KindCodeUpdate:
		s.broadcast(NewCodeUpdate(*in.Code), s.id)
	case KindChatMessage:
		s.broadcast(NewChatMessage(*in.Message, s.displayName, s.hub.stamp()), "")
	case KindExecuteCode:
		s.execute(*in.Code, in.Language)
	}
}

func (s *Session) broadcast(msg interface{}, exclude string) {
	if err := s.hub.Broadcast(s.roomID, msg, exclude); err != nil {
		s.logger.Error("Session", "Broadcast encode failed", map[string]interface{}{
			"room_id": s.roomID, "session_id": s.id, "error": err,
		})
	}
}

// execute hands the snippet to the pool and answers this session only. If the
// session closes first the result is discarded.
func (s *Session) execute(code, language string) {
	task, err := s.executor.Submit(code, language)
	if err != nil {
		s.reply(NewExecutionError(err.Error()))
		return
	}

	go func() {
		select {
		case <-task.Done():
		case <-s.done:
			return
		}

		output, err := task.Result()
		if err != nil {
			s.reply(NewExecutionError(err.Error()))
			return
		}
		s.reply(NewExecutionResult(output))

		if s.hub.sink != nil {
			s.hub.sink.Emit(events.NewRoomEvent(events.CodeExecuted, s.roomID, s.id, s.displayName, map[string]interface{}{
				"language": language,
			}))
		}
	}()
}

func (s *Session) reply(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.Deliver(data); err != nil {
		s.logger.Warn("Session", "Reply dropped", map[string]interface{}{
			"room_id": s.roomID, "session_id": s.id, "error": err.Error(),
		})
	}
}

// writePump pumps messages from the send buffer to the websocket connection.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

package websocket

import (
	"errors"

	"codecollab-be/internal/pkg/logger"
)

var (
	ErrMemberClosed   = errors.New("member connection closed")
	ErrSendBufferFull = errors.New("member send buffer full")
)

// Member is a room participant as seen by the broadcaster.
type Member interface {
	ID() string
	DisplayName() string
	// Deliver enqueues data without blocking.
	Deliver(data []byte) error
	Close()
}

type roomOp int

const (
	opJoin roomOp = iota
	opLeave
	opBroadcast
)

type roomCommand struct {
	op      roomOp
	member  Member
	data    []byte
	exclude string
}

// room serializes membership changes and fan-out for one room id. Every
// recipient observes broadcasts in the order they were enqueued.
type room struct {
	id       string
	commands chan roomCommand
	members  map[string]Member
	notice   func(kind Kind, username string) []byte
	logger   logger.ILogger
}

func newRoom(id string, queue int, notice func(Kind, string) []byte, log logger.ILogger) *room {
	return &room{
		id:       id,
		commands: make(chan roomCommand, queue),
		members:  make(map[string]Member),
		notice:   notice,
		logger:   log,
	}
}

// run exits once commands is closed and drained. Members still present at that
// point are disconnected.
func (r *room) run() {
	defer func() {
		for id, m := range r.members {
			delete(r.members, id)
			m.Close()
		}
	}()

	for cmd := range r.commands {
		switch cmd.op {
		case opJoin:
			r.members[cmd.member.ID()] = cmd.member
			r.logger.Info("Room", "Session joined", map[string]interface{}{
				"room_id": r.id, "session_id": cmd.member.ID(), "members": len(r.members),
			})
			r.fanOut(cmd.data, cmd.member.ID())

		case opLeave:
			if _, ok := r.members[cmd.member.ID()]; !ok {
				// already evicted, its leave notice went out then
				continue
			}
			delete(r.members, cmd.member.ID())
			r.logger.Info("Room", "Session left", map[string]interface{}{
				"room_id": r.id, "session_id": cmd.member.ID(), "members": len(r.members),
			})
			r.fanOut(cmd.data, cmd.member.ID())

		case opBroadcast:
			r.fanOut(cmd.data, cmd.exclude)
		}
	}
}

// fanOut delivers data to every member but exclude. A member that cannot keep
// up is evicted and announced as leaving; delivery to the others continues.
func (r *room) fanOut(data []byte, exclude string) {
	if data == nil {
		return
	}

	var evicted []Member
	for id, m := range r.members {
		if id == exclude {
			continue
		}
		err := m.Deliver(data)
		switch {
		case err == nil:
		case errors.Is(err, ErrSendBufferFull):
			evicted = append(evicted, m)
		default:
			r.logger.Debug("Room", "Delivery skipped", map[string]interface{}{
				"room_id": r.id, "session_id": id, "error": err.Error(),
			})
		}
	}

	for _, m := range evicted {
		if _, ok := r.members[m.ID()]; !ok {
			continue
		}
		delete(r.members, m.ID())
		m.Close()
		r.logger.Warn("Room", "Evicted slow session", map[string]interface{}{
			"room_id": r.id, "session_id": m.ID(),
		})
		r.fanOut(r.notice(KindLeaveNotice, m.DisplayName()), m.ID())
	}
}

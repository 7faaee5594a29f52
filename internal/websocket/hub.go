package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"codecollab-be/internal/pkg/logger"
	"codecollab-be/pkg/events"
)

var ErrHubClosed = errors.New("hub is closed")

// Relay carries room traffic to other server instances.
type Relay interface {
	Publish(ctx context.Context, roomID string, data []byte)
	Subscribe(ctx context.Context, deliver func(roomID string, data []byte))
}

// EventSink receives room activity (joins, leaves, executions).
type EventSink interface {
	Emit(event events.Event)
}

type roomEntry struct {
	room *room
	refs int
}

// Hub is the room registry. Rooms are created on first join and dropped when
// their last session leaves; each room runs its own dispatch goroutine.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]*roomEntry
	closed bool
	wg     sync.WaitGroup

	queue  int
	stamp  Stamper
	relay  Relay
	sink   EventSink
	logger logger.ILogger
}

type HubOption func(*Hub)

func WithRelay(r Relay) HubOption {
	return func(h *Hub) { h.relay = r }
}

func WithEventSink(s EventSink) HubOption {
	return func(h *Hub) { h.sink = s }
}

func WithStamper(s Stamper) HubOption {
	return func(h *Hub) {
		if s != nil {
			h.stamp = s
		}
	}
}

// WithDispatchQueue sets how many commands a room buffers ahead of its dispatcher.
func WithDispatchQueue(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.queue = n
		}
	}
}

func NewHub(log logger.ILogger, opts ...HubOption) *Hub {
	h := &Hub{
		rooms:  make(map[string]*roomEntry),
		queue:  256,
		stamp:  NewStamper(nil, nil),
		logger: log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run relays remote room traffic into local rooms until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.relay == nil {
		<-ctx.Done()
		return
	}
	h.relay.Subscribe(ctx, h.deliverRemote)
}

func (h *Hub) noticeFor(kind Kind, username string) []byte {
	data, err := json.Marshal(NewNotice(kind, username, h.stamp()))
	if err != nil {
		return nil
	}
	return data
}

// Join adds m to roomID and announces it to the other members. It does not
// wait for the announcement to be delivered.
func (h *Hub) Join(roomID string, m Member) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHubClosed
	}
	entry, ok := h.rooms[roomID]
	if !ok {
		entry = &roomEntry{room: newRoom(roomID, h.queue, h.noticeFor, h.logger)}
		h.rooms[roomID] = entry
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			entry.room.run()
		}()
	}
	entry.refs++
	h.mu.Unlock()

	notice := h.noticeFor(KindJoinNotice, m.DisplayName())
	if !h.send(roomID, entry, roomCommand{op: opJoin, member: m, data: notice}) {
		return ErrHubClosed
	}
	h.publishRemote(roomID, notice)
	h.emit(events.RoomJoined, roomID, m)
	return nil
}

// Leave removes m from roomID and announces it. Call it exactly once per
// successful Join, including after abnormal disconnects.
func (h *Hub) Leave(roomID string, m Member) {
	h.mu.RLock()
	entry, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	notice := h.noticeFor(KindLeaveNotice, m.DisplayName())
	if h.send(roomID, entry, roomCommand{op: opLeave, member: m, data: notice}) {
		h.publishRemote(roomID, notice)
	}
	h.emit(events.RoomLeft, roomID, m)

	h.mu.Lock()
	entry.refs--
	if entry.refs == 0 && h.rooms[roomID] == entry {
		delete(h.rooms, roomID)
		close(entry.room.commands)
	}
	h.mu.Unlock()
}

// send enqueues cmd on entry while it is still the registered room for roomID.
// Holding the read lock keeps Leave and Close from closing the channel under us.
func (h *Hub) send(roomID string, entry *roomEntry, cmd roomCommand) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.rooms[roomID] != entry {
		return false
	}
	entry.room.commands <- cmd
	return true
}

// Broadcast encodes msg and fans it out to roomID, skipping the member whose id
// equals exclude ("" excludes nobody).
func (h *Hub) Broadcast(roomID string, msg interface{}, exclude string) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.BroadcastRaw(roomID, data, exclude)
	return nil
}

func (h *Hub) BroadcastRaw(roomID string, data []byte, exclude string) {
	if h.enqueue(roomID, roomCommand{op: opBroadcast, data: data, exclude: exclude}) {
		h.publishRemote(roomID, data)
	}
}

func (h *Hub) deliverRemote(roomID string, data []byte) {
	h.enqueue(roomID, roomCommand{op: opBroadcast, data: data})
}

func (h *Hub) enqueue(roomID string, cmd roomCommand) bool {
	h.mu.RLock()
	entry, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return h.send(roomID, entry, cmd)
}

func (h *Hub) publishRemote(roomID string, data []byte) {
	if h.relay == nil || data == nil {
		return
	}
	h.relay.Publish(context.Background(), roomID, data)
}

func (h *Hub) emit(eventType, roomID string, m Member) {
	if h.sink == nil {
		return
	}
	h.sink.Emit(events.NewRoomEvent(eventType, roomID, m.ID(), m.DisplayName(), nil))
}

// Stats reports active rooms and joined sessions on this instance.
func (h *Hub) Stats() (rooms, sessions int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, entry := range h.rooms {
		sessions += entry.refs
	}
	return len(h.rooms), sessions
}

// Close stops accepting joins, stops every room dispatcher and waits for them.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for id, entry := range h.rooms {
		delete(h.rooms, id)
		close(entry.room.commands)
	}
	h.mu.Unlock()

	h.wg.Wait()
}

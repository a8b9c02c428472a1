// Package realtime keeps the live WebSocket connections of each clinic chat
// thread and fans events out to them.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBuffer = 64

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// heartbeat bounds how long a silent or stuck peer may hold its place.
type heartbeat struct {
	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration
}

// Member is one live connection joined to a thread room.
type Member struct {
	ID       string
	ThreadID uuid.UUID
	Send     chan []byte
	conn     Conn
}

// Rooms maps thread ids to the set of members currently connected to them.
// A room exists only while it has at least one member.
type Rooms struct {
	mu       sync.RWMutex
	rooms    map[uuid.UUID]map[*Member]struct{}
	log      zerolog.Logger
	upgrader websocket.Upgrader
	beat     heartbeat
}

func NewRooms(log zerolog.Logger) *Rooms {
	return &Rooms{
		rooms: make(map[uuid.UUID]map[*Member]struct{}),
		log:   log,
		beat:  heartbeat{writeWait: writeWait, pongWait: pongWait, pingPeriod: pingPeriod},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Accept upgrades the HTTP request. Callers must either Join the returned
// connection or Reject it.
func (r *Rooms) Accept(w http.ResponseWriter, req *http.Request) (*websocket.Conn, error) {
	return r.upgrader.Upgrade(w, req, nil)
}

// Reject closes an accepted connection with a policy-violation close frame.
func Reject(ws *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = ws.Close()
}

// Join adds conn to the thread's room and starts its write pump. The greeting,
// when not nil, is queued before the member becomes visible to broadcasts.
func (r *Rooms) Join(threadID uuid.UUID, conn Conn, greeting any) *Member {
	m := &Member{
		ID:       uuid.NewString(),
		ThreadID: threadID,
		Send:     make(chan []byte, sendBuffer),
		conn:     conn,
	}

	if greeting != nil {
		if data, err := json.Marshal(greeting); err == nil {
			m.Send <- data
		}
	}

	r.mu.Lock()
	room, ok := r.rooms[threadID]
	if !ok {
		room = make(map[*Member]struct{})
		r.rooms[threadID] = room
	}
	room[m] = struct{}{}
	r.mu.Unlock()

	go r.writePump(m)

	return m
}

// Leave removes the member and closes its Send channel. Calling it more than
// once is a no-op.
func (r *Rooms) Leave(m *Member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[m.ThreadID]
	if !ok {
		return
	}
	if _, ok := room[m]; !ok {
		return
	}

	delete(room, m)
	if len(room) == 0 {
		delete(r.rooms, m.ThreadID)
	}
	close(m.Send)
}

// Broadcast sends payload as JSON to every member of the thread's room.
func (r *Rooms) Broadcast(threadID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Warn().Err(err).Str("thread_id", threadID.String()).Msg("realtime: marshal payload")
		return
	}
	r.BroadcastRaw(threadID, data)
}

// BroadcastRaw delivers already encoded data. Members whose buffer is full
// are dropped; the rest still receive the frame.
func (r *Rooms) BroadcastRaw(threadID uuid.UUID, data []byte) {
	var stale []*Member

	r.mu.RLock()
	for m := range r.rooms[threadID] {
		select {
		case m.Send <- data:
		default:
			stale = append(stale, m)
		}
	}
	r.mu.RUnlock()

	for _, m := range stale {
		r.log.Warn().Str("thread_id", threadID.String()).Str("member", m.ID).Msg("realtime: member too slow, dropping")
		r.Leave(m)
	}
}

// Serve reads and discards inbound frames until the connection fails or the
// peer stops answering pings, then removes the member. It blocks for the
// lifetime of the connection.
func (r *Rooms) Serve(m *Member) {
	defer r.Leave(m)

	_ = m.conn.SetReadDeadline(time.Now().Add(r.beat.pongWait))
	m.conn.SetPongHandler(func(string) error {
		return m.conn.SetReadDeadline(time.Now().Add(r.beat.pongWait))
	})

	for {
		if _, _, err := m.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (r *Rooms) writePump(m *Member) {
	ticker := time.NewTicker(r.beat.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = m.conn.Close()
	}()

	for {
		select {
		case data, ok := <-m.Send:
			if !ok {
				return
			}
			_ = m.conn.SetWriteDeadline(time.Now().Add(r.beat.writeWait))
			if err := m.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				r.log.Warn().Err(err).Str("thread_id", m.ThreadID.String()).Str("member", m.ID).Msg("realtime: write failed, dropping")
				r.Leave(m)
				return
			}

		case <-ticker.C:
			_ = m.conn.SetWriteDeadline(time.Now().Add(r.beat.writeWait))
			if err := m.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				r.Leave(m)
				return
			}
		}
	}
}

// RoomCount returns the number of threads with at least one live member.
func (r *Rooms) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// MemberCount returns the number of live members in a thread's room.
func (r *Rooms) MemberCount(threadID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[threadID])
}

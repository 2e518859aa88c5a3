package core

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/proto"
)

// Registry tracks which connections are currently attached to each room.
// It is an injectable object rather than package state so tests can run
// several independent registries in one process.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[*Conn]struct{}
	log   *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		rooms: make(map[string]map[*Conn]struct{}),
		log:   logger,
	}
}

// Attach adds a connection to the room's set, creating the set if needed.
func (r *Registry) Attach(roomID string, c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.rooms[roomID]
	if !ok {
		conns = make(map[*Conn]struct{})
		r.rooms[roomID] = conns
	}
	conns[c] = struct{}{}
}

// Detach removes a connection from the room's set. The room entry is deleted
// once its set becomes empty so the registry only holds active rooms.
func (r *Registry) Detach(roomID string, c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(r.rooms, roomID)
	}
}

// Broadcast sends msg to every connection attached to roomID except sender.
// The set is snapshotted under the lock and delivery happens outside it, so
// a connection detaching mid-broadcast cannot fail the rest. Delivery is
// best-effort: a full event buffer drops the frame for that recipient only.
func (r *Registry) Broadcast(roomID string, sender *Conn, msg proto.Message) {
	r.mu.Lock()
	recipients := make([]*Conn, 0, len(r.rooms[roomID]))
	for c := range r.rooms[roomID] {
		if c != sender {
			recipients = append(recipients, c)
		}
	}
	r.mu.Unlock()

	for _, c := range recipients {
		select {
		case c.Events <- msg:
		default:
			r.log.Warn().Str("conn_id", c.ID).Str("room_id", roomID).Msg("dropping frame for slow consumer")
		}
	}
}

// Active reports whether any connection is currently attached to roomID.
func (r *Registry) Active(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rooms[roomID]
	return ok
}

// Count returns the number of connections attached to roomID.
func (r *Registry) Count(roomID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[roomID])
}

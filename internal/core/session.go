package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/proto"
	"github.com/pairpad/pairpad-server/internal/store"
)

// Session drives one client's attachment to one room:
// Connecting -> Attached -> Closed. A session never changes rooms; a dropped
// connection is destroyed and the client reconnects fresh.
type Session struct {
	registry *Registry
	store    store.RoomStore
	log      *zerolog.Logger

	conn   *Conn
	roomID string

	detachOnce sync.Once

	// onUpdateFailure is invoked when persisting an update fails. The
	// session stays attached and the client receives no error; the hook
	// makes that suppression observable instead of an implicit log line.
	onUpdateFailure func(error)
}

// NewSession constructs a session for the given connection. It starts in the
// Connecting state; call Attach to enter the room.
func NewSession(registry *Registry, st store.RoomStore, conn *Conn, logger *zerolog.Logger) *Session {
	return &Session{
		registry: registry,
		store:    st,
		log:      logger,
		conn:     conn,
	}
}

// OnUpdateFailure installs an observer for persistence failures during
// steady-state updates. Must be called before the session starts handling
// messages.
func (s *Session) OnUpdateFailure(fn func(error)) {
	s.onUpdateFailure = fn
}

// Conn returns the connection this session drives.
func (s *Session) Conn() *Conn {
	return s.conn
}

// Attach validates rawRoomID, registers the connection and returns the
// snapshot frame that must be sent to the client exactly once.
// Returns ErrInvalidRoomID for a malformed identifier and
// store.ErrRoomNotFound when no such room is persisted; in both cases the
// connection never enters the registry.
func (s *Session) Attach(ctx context.Context, rawRoomID string) (proto.Message, error) {
	id, err := uuid.Parse(rawRoomID)
	if err != nil {
		return proto.Message{}, fmt.Errorf("%w: %q", ErrInvalidRoomID, rawRoomID)
	}

	room, err := s.store.GetRoom(ctx, id.String())
	if err != nil {
		return proto.Message{}, err
	}

	s.roomID = room.ID
	s.registry.Attach(s.roomID, s.conn)

	return proto.InitialCode(room.Code), nil
}

// HandleMessage processes one inbound frame in the Attached state.
// code_update frames are persisted (last-write-wins) and then relayed to
// every other connection in the room; frames of any other type are ignored.
// A storage failure aborts that single update without ending the session.
func (s *Session) HandleMessage(ctx context.Context, msg proto.Message) error {
	if s.roomID == "" {
		return ErrNotAttached
	}

	if msg.Type != proto.TypeCodeUpdate {
		s.log.Debug().Str("type", msg.Type).Str("room_id", s.roomID).Msg("ignoring unrecognized frame")
		return nil
	}

	if _, err := s.store.UpdateRoomCode(ctx, s.roomID, msg.Code); err != nil {
		s.log.Warn().Err(err).Str("room_id", s.roomID).Str("conn_id", s.conn.ID).Msg("failed to persist update")
		if s.onUpdateFailure != nil {
			s.onUpdateFailure(err)
		}
		return nil
	}

	s.registry.Broadcast(s.roomID, s.conn, proto.CodeUpdate(msg.Code))
	return nil
}

// Close detaches the connection from the registry. Safe to call from either
// side of the transport and from deferred cleanup; detach runs exactly once.
func (s *Session) Close() {
	s.detachOnce.Do(func() {
		if s.roomID != "" {
			s.registry.Detach(s.roomID, s.conn)
		}
	})
}

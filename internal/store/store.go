package store

import (
	"context"
	"errors"
	"time"
)

// Room is a shared editing buffer with a durable identity.
type Room struct {
	ID        string // UUID, immutable after creation
	Code      string
	UpdatedAt time.Time
}

var (
	// ErrRoomNotFound is returned when no room exists for the given ID.
	ErrRoomNotFound = errors.New("room not found")
)

// RoomStore handles room persistence.
//
// Implementations are responsible for serializing concurrent writes to the
// same room so that UpdateRoomCode never corrupts a record; which of two
// racing updates wins is whichever commits last.
type RoomStore interface {
	// CreateRoom allocates a new room with empty code and persists it.
	CreateRoom(ctx context.Context) (*Room, error)

	// GetRoom retrieves a room by ID. Returns ErrRoomNotFound if absent.
	GetRoom(ctx context.Context, id string) (*Room, error)

	// UpdateRoomCode overwrites the room's code, refreshes UpdatedAt and
	// returns the updated room. Returns ErrRoomNotFound if absent.
	// This is a full overwrite, not a patch.
	UpdateRoomCode(ctx context.Context, id, code string) (*Room, error)

	// Close closes the underlying database connection.
	Close() error
}

package core

import "errors"

var (
	// ErrInvalidRoomID means the supplied room identifier is not a valid UUID.
	ErrInvalidRoomID = errors.New("invalid room id")
	// ErrNotAttached means a session operation was attempted before Attach.
	ErrNotAttached = errors.New("session not attached")
)

package core

import "github.com/pairpad/pairpad-server/internal/proto"

// Conn is one live client connection as seen by the core layer. The session
// driving it is the only writer to the underlying transport; everyone else
// (broadcasts included) delivers through the buffered Events channel.
type Conn struct {
	ID     string
	Events chan proto.Message
}

// NewConn constructs a connection with an initialized event channel.
func NewConn(id string) *Conn {
	return &Conn{
		ID:     id,
		Events: make(chan proto.Message, 16),
	}
}

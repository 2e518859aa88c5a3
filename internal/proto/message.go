package proto

// Message is the single frame shape exchanged over a room WebSocket.
// The Type field discriminates; frames with unknown types are dropped.
type Message struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

const (
	// TypeInitialCode carries the room snapshot, sent once right after attach.
	TypeInitialCode = "initial_code"
	// TypeCodeUpdate carries new buffer content, in both directions.
	TypeCodeUpdate = "code_update"
)

// Close codes used when an attach attempt is rejected.
const (
	CloseInvalidRoomID = 4000
	CloseRoomNotFound  = 4004
)

// InitialCode builds the snapshot frame sent once per session.
func InitialCode(code string) Message {
	return Message{Type: TypeInitialCode, Code: code}
}

// CodeUpdate builds the relay frame broadcast to room peers.
func CodeUpdate(code string) Message {
	return Message{Type: TypeCodeUpdate, Code: code}
}

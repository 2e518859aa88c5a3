package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewConnID returns a best-effort unique identifier for a live connection.
// Connections are never persisted, so this does not need to be a UUID.
func NewConnID() string {
	const size = 12

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}

	// Fallback to timestamp if crypto/rand is unavailable.
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

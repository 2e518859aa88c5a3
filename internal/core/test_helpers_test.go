package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/proto"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func mustReceive(t *testing.T, c *Conn) proto.Message {
	t.Helper()

	select {
	case msg := <-c.Events:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("expected message on conn %s, got none", c.ID)
		return proto.Message{}
	}
}

func mustBeSilent(t *testing.T, c *Conn) {
	t.Helper()

	select {
	case msg := <-c.Events:
		t.Fatalf("expected no message on conn %s, got %+v", c.ID, msg)
	case <-time.After(100 * time.Millisecond):
	}
}

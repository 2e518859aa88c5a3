package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/proto"
	"github.com/pairpad/pairpad-server/internal/store"
	"github.com/pairpad/pairpad-server/internal/store/sqlite"
)

type testServer struct {
	ts       *httptest.Server
	store    store.RoomStore
	registry *core.Registry
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	nop := zerolog.Nop()
	registry := core.NewRegistry(&nop)

	server := NewServer(registry, st, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &nop)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, store: st, registry: registry}
}

func (s *testServer) wsURL(roomID string) string {
	return strings.Replace(s.ts.URL, "http", "ws", 1) + "/ws/" + roomID
}

// createRoom allocates a room through the REST endpoint.
func createRoom(t *testing.T, s *testServer) string {
	t.Helper()

	resp, err := s.ts.Client().Post(s.ts.URL+"/api/rooms", "application/json", nil)
	if err != nil {
		t.Fatalf("create room request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected create room status: %d", resp.StatusCode)
	}

	var body CreateRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode create room response: %v", err)
	}
	return body.RoomID
}

// dialRoom attaches to a room and returns the connection plus the snapshot frame.
func dialRoom(t *testing.T, ctx context.Context, s *testServer, roomID string) (*websocket.Conn, proto.Message) {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, s.wsURL(roomID), nil)
	if err != nil {
		t.Fatalf("dial room %s: %v", roomID, err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	var initial proto.Message
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	return conn, initial
}

// waitForCode polls the store until the room's code equals want.
func waitForCode(t *testing.T, s *testServer, roomID, want string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		room, err := s.store.GetRoom(context.Background(), roomID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if room.Code == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached code %q", roomID, want)
}

// expectSilence asserts that no frame arrives on conn within a short window.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var msg proto.Message
	if err := wsjson.Read(ctx, conn, &msg); err == nil {
		t.Fatalf("expected no frame, got %+v", msg)
	}
}

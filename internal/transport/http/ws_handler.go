package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/proto"
	"github.com/pairpad/pairpad-server/internal/store"
	"github.com/pairpad/pairpad-server/internal/utils"
)

// WSHandler upgrades HTTP connections and bridges them to core.Session.
type WSHandler struct {
	registry *core.Registry
	store    store.RoomStore
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, st store.RoomStore, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{registry: registry, store: st, log: logger}
}

// Attach handles a room attachment.
// GET /ws/:room_id
func (h *WSHandler) Attach(c *gin.Context) {
	ctx := c.Request.Context()
	rawRoomID := c.Param("room_id")

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	session := core.NewSession(h.registry, h.store, core.NewConn(utils.NewConnID()), h.log)

	initial, err := session.Attach(ctx, rawRoomID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRoomID):
			conn.Close(websocket.StatusCode(proto.CloseInvalidRoomID), "invalid room id")
		case errors.Is(err, store.ErrRoomNotFound):
			conn.Close(websocket.StatusCode(proto.CloseRoomNotFound), "room not found")
		default:
			h.log.Error().Err(err).Str("room_id", rawRoomID).Msg("attach failed")
			conn.Close(websocket.StatusInternalError, "internal error")
		}
		return
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := wsjson.Write(ctx, conn, initial); err != nil {
		h.log.Warn().Err(err).Str("conn_id", session.Conn().ID).Msg("write initial snapshot")
		return
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session.Conn())
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		var msg proto.Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		if err := session.HandleMessage(ctx, msg); err != nil {
			h.log.Warn().Err(err).Str("conn_id", session.Conn().ID).Msg("handle ws message")
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, c *core.Conn) error {
	for {
		select {
		case msg := <-c.Events:
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				h.log.Error().Err(err).Str("conn_id", c.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

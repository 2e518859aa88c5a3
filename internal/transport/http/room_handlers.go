package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/store"
)

// RoomHandlers provides HTTP handlers for room management endpoints.
type RoomHandlers struct {
	store store.RoomStore
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(st store.RoomStore, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		store: st,
		log:   logger,
	}
}

// CreateRoomResponse represents the create room response body.
type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// CreateRoom handles room creation. Takes no input body.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	room, err := h.store.CreateRoom(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("room_id", room.ID).Msg("room created")
	c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: room.ID})
}

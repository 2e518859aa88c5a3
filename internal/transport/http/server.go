package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/store"
)

// NewServer builds the HTTP server with REST and WebSocket routes.
func NewServer(registry *core.Registry, st store.RoomStore, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	roomHandlers := NewRoomHandlers(st, logger)
	router.POST("/api/rooms", roomHandlers.CreateRoom)

	completeHandlers := NewCompleteHandlers(logger)
	router.POST("/api/autocomplete", completeHandlers.Autocomplete)

	wsHandler := NewWSHandler(registry, st, logger)
	router.GET("/ws/:room_id", wsHandler.Attach)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(stdhttp.StatusOK, gin.H{"status": "ok"})
}

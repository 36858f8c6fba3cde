package http

import (
	"context"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-relay/internal/config"
	"github.com/vovakirdan/wirechat-relay/internal/core"
)

// Hub is the part of core.Hub the transport needs.
type Hub interface {
	RegisterClient(ctx context.Context, c *core.Client) error
	UnregisterClient(c *core.Client)
	Submit(ctx context.Context, cmd core.Command) error
	Snapshot(ctx context.Context) ([]core.Connection, error)
}

// NewServer builds an HTTP server with the relay routes. The websocket
// endpoint sits on the plain mux: gin's writer refuses to hijack once the
// upgrade response has been written.
func NewServer(hub Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", NewRouter(hub, cfg, logger))

	return &stdhttp.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine: health, presence listing and optional
// static files for the browser client.
func NewRouter(hub Hub, cfg config.Config, logger *zerolog.Logger) *gin.Engine {
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	presence := NewPresenceHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms", presence.ListRooms)
	api.GET("/rooms/:room/users", presence.ListRoomUsers)

	if cfg.StaticDir != "" {
		files := gin.Dir(cfg.StaticDir, false)
		router.NoRoute(func(c *gin.Context) {
			c.FileFromFS(c.Request.URL.Path, files)
		})
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-relay/internal/proto"
)

// ErrorResponse is the body of a failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PresenceHandlers serves a read-only view of who is in which room.
type PresenceHandlers struct {
	hub Hub
	log *zerolog.Logger
}

// NewPresenceHandlers creates presence handlers backed by hub.
func NewPresenceHandlers(hub Hub, logger *zerolog.Logger) *PresenceHandlers {
	return &PresenceHandlers{hub: hub, log: logger}
}

// ListRooms returns every occupied room with its users.
// GET /api/rooms
func (h *PresenceHandlers) ListRooms(c *gin.Context) {
	conns, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("presence snapshot failed")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "relay unavailable"})
		return
	}
	c.JSON(http.StatusOK, presenceFromSnapshot(conns))
}

// ListRoomUsers returns the users of one room. An unoccupied room is not an
// error; it simply has no users.
// GET /api/rooms/:room/users
func (h *PresenceHandlers) ListRoomUsers(c *gin.Context) {
	room := c.Param("room")
	conns, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("presence snapshot failed")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "relay unavailable"})
		return
	}

	users := make([]proto.User, 0)
	for _, conn := range conns {
		if conn.Room == room {
			users = append(users, proto.User{ID: conn.ID, Name: conn.Name, Room: conn.Room})
		}
	}
	c.JSON(http.StatusOK, proto.EventUserList{Users: users})
}

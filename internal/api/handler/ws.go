package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"reportbox/backend/internal/livefeed"
	"reportbox/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeReportFeed upgrades GET /ws/reports to a WebSocket that streams every
// newly created report to the admin dashboard.
func (h *Handler) ServeReportFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &livefeed.WebSocketClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Hub:  h.Feed,
		Send: make(chan models.Report, 16),
	}

	h.Feed.RegisterCh <- client
	client.Run()
}

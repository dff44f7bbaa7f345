package server

import (
	"log/slog"

	"github.com/gosh00/FitnessApp/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	localFeedViewer = "feedViewer"
	anonymousViewer = "anonymous"
)

// FeedUpgrade rejects plain HTTP requests on the feed socket route and
// records who is watching: the verified caller, else viewer_id, else anonymous.
func (s *Server) FeedUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	viewer := anonymousViewer
	if authID, ok := middleware.AuthIDFromLocals(c); ok {
		viewer = authID.String()
	} else if id, err := uuid.Parse(c.Query("viewer_id")); err == nil {
		viewer = id.String()
	}
	c.Locals(localFeedViewer, viewer)
	return c.Next()
}

// FeedWebSocketHandler streams live workout, like and comment events.
// Clients only receive; anything they send is discarded.
func (s *Server) FeedWebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		viewer, _ := conn.Locals(localFeedViewer).(string)
		if viewer == "" {
			viewer = anonymousViewer
		}

		client, err := s.hub.Register(viewer, conn)
		if err != nil {
			middleware.Logger.Warn("feed websocket rejected",
				slog.String("viewer", viewer),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		middleware.Logger.Debug("feed websocket connected", slog.String("viewer", viewer))

		go client.WritePump()
		client.ReadPump()
	})
}

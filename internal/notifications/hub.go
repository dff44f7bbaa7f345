package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerViewer = 8
	maxTotalConns     = 10000
)

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("feed hub is shut down")

// Hub tracks the websocket clients watching the live feed.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	perViewer map[string]int
	closed    bool
}

// NewHub creates an empty feed hub.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		perViewer: make(map[string]int),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "feed hub" }

// Register adds a connection for viewer, enforcing per-viewer and global limits.
func (h *Hub) Register(viewer string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.clients) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}
	if h.perViewer[viewer] >= maxConnsPerViewer {
		return nil, errors.New("viewer connection limit reached")
	}

	client := NewClient(h, conn, viewer)
	h.clients[client] = struct{}{}
	h.perViewer[viewer]++
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// UnregisterClient removes the client and closes its send channel.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if h.perViewer[client.Viewer]--; h.perViewer[client.Viewer] <= 0 {
		delete(h.perViewer, client.Viewer)
	}
	close(client.Send)
	observability.WebSocketConnectionsTotal.Dec()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	observability.WebSocketEventsTotal.WithLabelValues(eventType(message)).Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// PublishFeedEvent delivers an event to this instance's clients only. It is
// used when Redis is unavailable.
func (h *Hub) PublishFeedEvent(_ context.Context, event FeedEvent) error {
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	h.BroadcastAll(payload)
	return nil
}

// StartWiring forwards every event published on the Redis feed channel to
// the connected clients.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartFeedSubscriber(ctx, h.BroadcastAll)
}

// Shutdown closes every connection with a going-away frame.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for client := range h.clients {
		if client.Conn != nil {
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				middleware.Logger.Debug("failed to write close frame", slog.String("viewer", client.Viewer), slog.String("error", err.Error()))
			}
			_ = client.Conn.Close()
		}
		close(client.Send)
		delete(h.clients, client)
		observability.WebSocketConnectionsTotal.Dec()
	}
	h.perViewer = make(map[string]int)
	return nil
}

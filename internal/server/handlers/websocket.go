// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 512,
	}
}

// WebSocketUpgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// UpdateHub fans snapshot events out to all connected dashboard
// clients. It is purely in-process: the dashboard is a single-process
// system, so no broker sits between the watcher and the clients.
type UpdateHub struct {
	mu      sync.Mutex
	clients map[*updateClient]struct{}
}

// NewUpdateHub creates a new update hub
func NewUpdateHub() *UpdateHub {
	return &UpdateHub{
		clients: make(map[*updateClient]struct{}),
	}
}

// Broadcast sends an event to every connected client. Clients too slow
// to drain their send buffer are dropped.
func (h *UpdateHub) Broadcast(event string) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type": event,
		"time": time.Now(),
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *UpdateHub) register(c *updateClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *UpdateHub) unregister(c *updateClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// updateClient represents one connected dashboard page
type updateClient struct {
	hub  *UpdateHub
	conn *websocket.Conn
	send chan []byte
}

// UpdatesWebSocketHandler upgrades the connection and streams snapshot
// events to the dashboard page
func UpdatesWebSocketHandler(hub *UpdateHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client := &updateClient{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 8),
		}
		hub.register(client)

		go client.writePump()
		go client.readPump()

		// Welcome message so the page knows the stream is live
		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "connected",
			"time": time.Now(),
		})
		client.send <- welcome
	}
}

// readPump drains the connection to keep pong handling alive. The
// update stream is one-way; incoming frames are discarded.
func (c *updateClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps events from the hub to the WebSocket connection
func (c *updateClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package web

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub fans assistant events out to every connected client and funnels
// client messages into a single inbound handler. Channel-based fan-out:
// only the Run loop touches the client set.
type Hub struct {
	logger *slog.Logger

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client

	// onMessage receives every inbound client message.
	onMessage func(ClientMessage)

	mu sync.RWMutex
}

// newHub creates a hub delivering inbound messages to onMessage.
func newHub(onMessage func(ClientMessage)) *Hub {
	return &Hub{
		logger:     slog.Default().With("component", "web.hub"),
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		onMessage:  onMessage,
	}
}

// Run drives the hub's main loop. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "remaining", count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					// Slow consumer; drop it rather than stall the feed.
					close(c.send)
					delete(h.clients, c)
					h.logger.Warn("dropped slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent encodes and queues an event for every client.
func (h *Hub) BroadcastEvent(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("event encode failed", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast queue full, event dropped", "type", evt.Type)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// dispatch forwards one decoded inbound message.
func (h *Hub) dispatch(msg ClientMessage) {
	if h.onMessage != nil {
		h.onMessage(msg)
	}
}

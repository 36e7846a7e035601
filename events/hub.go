// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/metrics"
)

// Hub fans encoded messages out to connected WebSocket clients. The client
// set is owned by the Serve goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	done     chan struct{}
	stopOnce sync.Once
	count    atomic.Int64
}

// NewHub creates a hub; call Serve to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Publish encodes the event and queues it for every client
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Message{Type: event, Data: payload})
	if err != nil {
		slog.Error("failed to encode event", "event", event, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(event).Inc()
	h.Deliver(data)
}

// Deliver queues an already-encoded message. It drops the message if the
// broadcast buffer is full.
func (h *Hub) Deliver(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		metrics.EventsDropped.WithLabelValues("hub_full").Inc()
		slog.Warn("event dropped, hub buffer full")
	}
}

// Register adds a client. It returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Serve runs the hub loop until ctx is done
func (h *Hub) Serve(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount()
			slog.Info("websocket client connected", "total_clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.setCount()
				slog.Info("websocket client disconnected", "total_clients", len(h.clients))
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					// slow client: drop it rather than block everyone
					delete(h.clients, c)
					close(c.send)
					metrics.EventsDropped.WithLabelValues("client_full").Inc()
				}
			}
			h.setCount()
		}
	}
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() { close(h.done) })
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.setCount()
	slog.Info("websocket hub stopped")
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.WebSocketClients.Set(float64(len(h.clients)))
}

func (h *Hub) String() string {
	return "events-hub"
}

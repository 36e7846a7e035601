// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
)

// WebSocketHandler upgrades GET /api/ws and attaches the connection to the hub
type WebSocketHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts connections from the given origins; "*" allows any
func NewWebSocketHandler(hub *events.Hub, origins []string) *WebSocketHandler {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	events.NewClient(h.hub, conn).Start()
}

// Package sse fans change notifications out to connected dashboard
// clients, optionally bridged through redis so every instance sees every
// mutation.
package sse

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Event represents a Server-Sent Event.
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client represents a connected SSE client.
type Client struct {
	ID     string
	Events chan Event
}

// Hub manages all SSE client connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), log: log}
}

// Register adds a new client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.log.Info("sse client registered",
		zap.String("client_id", client.ID), zap.Int("total", len(h.clients)))
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.log.Info("sse client unregistered",
			zap.String("client_id", clientID), zap.Int("total", len(h.clients)))
	}
}

// Broadcast sends an event to all connected clients. Slow clients with a
// full buffer are skipped, not blocked on.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			h.log.Warn("sse client buffer full, skipping event",
				zap.String("client_id", client.ID))
		}
	}
}

// PublishChange broadcasts a table-level change event. The payload names
// the table, the mutation kind (insert/update/delete) and the row id so
// clients can refetch the state.
func (h *Hub) PublishChange(table, action, id string) {
	data := fmt.Sprintf(`{"table":%q,"action":%q,"id":%q}`, table, action, id)
	h.Broadcast(Event{EventType: "data_change", Data: data})
}

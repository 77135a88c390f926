// Package livefeed fans out newly created reports to connected admin
// dashboards over WebSocket. One-way broadcast only: dashboards never send.
package livefeed

import (
	"log"

	"reportbox/backend/internal/models"
)

// Client represents one active dashboard connection.
type Client interface {
	GetID() string
	GetSendChannel() chan<- models.Report
	Close()
}

// Hub owns the set of connected clients and the broadcast loop.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.Report
}

// NewHub initializes an empty hub.
func NewHub() *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.Report, 16),
	}
}

// Run is the hub dispatcher; call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetID()] = client
			log.Printf("livefeed: client %s connected (%d total)", client.GetID(), len(h.Clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetID()]; ok {
				delete(h.Clients, client.GetID())
				client.Close()
				log.Printf("livefeed: client %s disconnected (%d total)", client.GetID(), len(h.Clients))
			}

		case report := <-h.BroadcastCh:
			h.broadcast(report)
		}
	}
}

// Publish hands a report to the broadcast loop without blocking the caller.
func (h *Hub) Publish(report models.Report) {
	select {
	case h.BroadcastCh <- report:
	default:
		log.Printf("livefeed: broadcast queue full, dropping report %s", report.ID.Hex())
	}
}

// broadcast delivers to every client; a client with a full send buffer is
// dropped rather than stalling the loop.
func (h *Hub) broadcast(report models.Report) {
	for id, client := range h.Clients {
		select {
		case client.GetSendChannel() <- report:
		default:
			delete(h.Clients, id)
			client.Close()
			log.Printf("livefeed: client %s too slow, dropped", id)
		}
	}
}

// Package ws
package ws

import (
	"context"
	"encoding/json"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
)

const EventSnapshot = "snapshot"

type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans scheduled snapshots out to every connected client. Run owns the
// client set; everything else talks to it through channels.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	latest func() (domain.SystemSnapshot, bool)
	log    logger.Logger
}

func NewHub(log logger.Logger, latest func() (domain.SystemSnapshot, bool)) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),

		latest: latest,
		log:    log,
	}
}

func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "remote_addr", client.remoteAddr, "total_clients", len(h.clients))
			h.sendLatest(client)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warn("ws: client channel full, force unregister", "remote_addr", client.remoteAddr)
					h.remove(client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.log.Info("ws: hub stopped")
			return nil
		}
	}
}

// Register returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.log.Info("ws: client unregistered", "remote_addr", client.remoteAddr, "total_clients", len(h.clients))
}

func (h *Hub) sendLatest(client *Client) {
	if h.latest == nil {
		return
	}
	snap, ok := h.latest()
	if !ok {
		return
	}

	message, err := encode(snap)
	if err != nil {
		h.log.Error("ws: failed to marshal snapshot", "error", err)
		return
	}

	select {
	case client.send <- message:
	default:
	}
}

// Broadcast queues snap for every client. It drops the snapshot instead of
// blocking when the hub is behind.
func (h *Hub) Broadcast(snap domain.SystemSnapshot) {
	message, err := encode(snap)
	if err != nil {
		h.log.Error("ws: failed to marshal snapshot", "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("ws: broadcast queue full, snapshot dropped")
	}
}

func (h *Hub) Sink(_ context.Context, snap domain.SystemSnapshot) {
	h.Broadcast(snap)
}

func encode(snap domain.SystemSnapshot) ([]byte, error) {
	return json.Marshal(Message{Event: EventSnapshot, Payload: snap})
}

package ws

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/playmatatu/snooker/internal/game"
)

// Hub maintains the set of connected renderers. Every client watches the
// same table.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	nextID     atomic.Int64
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) newClientID() string {
	return "c" + strconv.FormatInt(h.nextID.Add(1), 10)
}

// add and remove return immediately once the hub has stopped.
func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			log.Println("[WS] Hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client %s connected (clients=%d)", client.id, n)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.id]; ok && cur == client {
				delete(h.clients, client.id)
				close(client.send)
				log.Printf("[WS] Client %s disconnected (clients=%d)", client.id, len(h.clients))
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client.
func (h *Hub) Broadcast(message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] Send buffer full for client %s, dropping message", client.id)
		}
	}
}

// sendTo queues data for a single registered client.
func (h *Hub) sendTo(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cur, ok := h.clients[c.id]; !ok || cur != c {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Send buffer full for client %s, dropping message", c.id)
	}
}

// BroadcastSnapshot implements game.Broadcaster.
func (h *Hub) BroadcastSnapshot(s game.Snapshot) {
	h.Broadcast(OutMessage{Type: MsgState, Data: s})
}

// BroadcastEvent forwards a table event to every client.
func (h *Hub) BroadcastEvent(e game.Event) {
	h.Broadcast(OutMessage{Type: MsgEvent, Data: e})
}

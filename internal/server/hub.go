package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// Hub fans game events out to every connected websocket. A client whose
// buffer is full is disconnected instead of stalling the match.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Connection]struct{}
	logger  *log.Logger
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*Connection]struct{}),
		logger:  logger.WithPrefix("hub"),
	}
}

// Register adds a client; it is removed again once it disconnects
func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Client connected", "total", total)

	go func() {
		<-c.Done()
		h.mu.Lock()
		delete(h.clients, c)
		total := len(h.clients)
		h.mu.Unlock()
		h.logger.Info("Client disconnected", "total", total)
	}()
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// OnEvent implements game.EventSubscriber
func (h *Hub) OnEvent(event game.GameEvent) {
	msg, err := NewMessage(event)
	if err != nil {
		h.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	var slow []*Connection
	h.mu.RLock()
	for c := range h.clients {
		if !c.trySend(msg) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Client send buffer full, dropping connection")
		c.Close()
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Close()
	}
}

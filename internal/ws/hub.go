package ws

import (
	"log/slog"
	"sync"

	"github.com/pjessen/partywords/internal/model"
)

// Hub tracks the websocket clients connected to a single party room
type Hub struct {
	code   model.PartyCode
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	closed  bool
}

// NewHub creates a new Hub for a party
func NewHub(code model.PartyCode, logger *slog.Logger) *Hub {
	return &Hub{
		code:    code,
		logger:  logger.With(slog.String("party", string(code))),
		clients: make(map[*Client]bool),
	}
}

func (h *Hub) register(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[client] = true
	h.logger.Info("ws client registered",
		slog.String("user_id", string(client.userID)),
		slog.Int("total_clients", len(h.clients)))
	return true
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Info("ws client unregistered",
		slog.String("user_id", string(client.userID)),
		slog.Int("total_clients", len(h.clients)))
}

// Publish fans a message out to every client, rendering per viewer.
// render is called once per distinct user and may return nil to skip.
func (h *Hub) Publish(render func(viewer model.UserID) []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cache := make(map[model.UserID][]byte, len(h.clients))
	dropped := 0
	for client := range h.clients {
		msg, ok := cache[client.userID]
		if !ok {
			msg = render(client.userID)
			cache[client.userID] = msg
		}
		if msg == nil {
			continue
		}
		if !client.enqueue(msg) {
			dropped++
			h.logger.Warn("ws message dropped - client buffer full",
				slog.String("user_id", string(client.userID)))
		}
	}
	if dropped > 0 {
		h.logger.Warn("ws publish partial failure", slog.Int("dropped", dropped))
	}
}

// SendToUsers delivers a message only to the given users' connections
func (h *Hub) SendToUsers(userIDs []model.UserID, msg []byte) {
	targets := make(map[model.UserID]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !targets[client.userID] {
			continue
		}
		if !client.enqueue(msg) {
			h.logger.Warn("ws message dropped - client buffer full",
				slog.String("user_id", string(client.userID)))
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects future registrations
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.logger.Info("ws hub closed")
}

// HubManager holds the hubs for all live parties
type HubManager struct {
	logger *slog.Logger

	mu   sync.RWMutex
	hubs map[model.PartyCode]*Hub
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		logger: logger.With(slog.String("component", "ws")),
		hubs:   make(map[model.PartyCode]*Hub),
	}
}

// GetOrCreateHub returns the hub for a party, creating one if needed
func (m *HubManager) GetOrCreateHub(code model.PartyCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hub, ok := m.hubs[code]; ok {
		return hub
	}
	hub := NewHub(code, m.logger)
	m.hubs[code] = hub
	return hub
}

// GetHub returns the hub for a party, or nil
func (m *HubManager) GetHub(code model.PartyCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[code]
}

// RemoveHub closes and forgets a party's hub
func (m *HubManager) RemoveHub(code model.PartyCode) {
	m.mu.Lock()
	hub, ok := m.hubs[code]
	if ok {
		delete(m.hubs, code)
	}
	m.mu.Unlock()
	if ok {
		hub.Close()
		m.logger.Info("ws hub removed", slog.String("party", string(code)))
	}
}

// CloseAll shuts down every hub
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	hubs := make([]*Hub, 0, len(m.hubs))
	for code, hub := range m.hubs {
		hubs = append(hubs, hub)
		delete(m.hubs, code)
	}
	m.mu.Unlock()
	for _, hub := range hubs {
		hub.Close()
	}
}

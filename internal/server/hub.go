package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks live sessions so they can be counted and closed on shutdown.
// Sessions share nothing else; each owns its dispatcher.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
}

type Stats struct {
	Sessions int `json:"sessions"`
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[*Session]struct{})}
}

func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
	_ = s.conn.Close()
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) Stats() Stats {
	return Stats{Sessions: h.Count()}
}

// CloseAll sends a close frame to every session and drops it.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline())
		_ = s.conn.Close()
		delete(h.sessions, s)
	}
}

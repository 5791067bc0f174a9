package realtime

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Hub is the set of connected sessions on this process.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[*Session]struct{})}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast queues frame on every session except the given one, which may be
// nil. Sessions that cannot keep up are disconnected.
func (h *Hub) Broadcast(frame []byte, except *Session) int {
	h.mu.RLock()
	var slow []*Session
	delivered := 0
	for s := range h.sessions {
		if s == except {
			continue
		}
		if s.enqueue(frame) {
			delivered++
		} else {
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		log.WithField("session", s.ID).Warn("dropping session that is not keeping up")
		h.remove(s)
		s.close()
	}
	return delivered
}

// CloseAll disconnects every session.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[*Session]struct{})
	h.mu.Unlock()

	for s := range sessions {
		s.close()
	}
}

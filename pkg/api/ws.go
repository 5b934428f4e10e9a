package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// CheckEvent is the envelope streamed to websocket subscribers while a
// server-side check run progresses.
type CheckEvent struct {
	Type    string      `json:"type"` // run_started, route_result, probe_result, run_finished
	RunID   string      `json:"runId"`
	Payload interface{} `json:"payload,omitempty"`
}

// CheckHub fans check events out to connected UI subscribers.
type CheckHub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	subs     map[*websocket.Conn]struct{}
}

func NewCheckHub() *CheckHub {
	return &CheckHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: map[*websocket.Conn]struct{}{},
	}
}

// HandleWS upgrades a subscriber connection and keeps it until it drops.
func (h *CheckHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	h.mu.Lock()
	h.subs[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("check subscriber connected: %s", r.RemoteAddr)
	go h.readLoop(c)
}

// readLoop drains the connection until close so the peer's control frames
// are processed, then drops the subscription.
func (h *CheckHub) readLoop(c *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.subs, c)
		h.mu.Unlock()
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends an event to every subscriber; dead connections are pruned
// on their next read error.
func (h *CheckHub) Broadcast(ev CheckEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs {
		if err := c.WriteJSON(ev); err != nil {
			log.Printf("ws broadcast failed: %v", err)
		}
	}
}

// Subscribers reports the current subscriber count.
func (h *CheckHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-BE/internal/notification"
)

// Hub is the in-process session registry: it maps a user ID to that user's
// live WebSocket sessions. A user may hold any number of sessions (multiple
// tabs or devices), each delivered to independently.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Client]struct{}),
	}
}

// Attach upgrades conn into a managed session for userID, registers it and
// starts its read/write pumps. The client is told the attach succeeded with
// a connection frame, matching what notification pushes look like on the
// wire.
func (h *Hub) Attach(conn *websocket.Conn, userID string) *Client {
	client := newClient(h, conn, userID)

	h.mu.Lock()
	if _, ok := h.sessions[userID]; !ok {
		h.sessions[userID] = make(map[*Client]struct{})
	}
	h.sessions[userID][client] = struct{}{}
	total := len(h.sessions[userID])
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	frame, _ := json.Marshal(map[string]string{"type": "connection", "status": "success"})
	if err := client.Send(frame); err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("failed to send connection frame")
	}

	log.Info().Str("userID", userID).Str("sessionID", client.id).Int("sessions", total).Msg("websocket session attached")
	return client
}

// Unregister removes the client and closes its connection. Safe to call more
// than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	removed := false
	if clients, ok := h.sessions[client.userID]; ok {
		if _, registered := clients[client]; registered {
			delete(clients, client)
			removed = true
			if len(clients) == 0 {
				delete(h.sessions, client.userID)
			}
		}
	}
	h.mu.Unlock()

	client.close()
	if removed {
		log.Info().Str("userID", client.userID).Str("sessionID", client.id).Msg("websocket session detached")
	}
}

// LiveSessions returns a snapshot of the user's current sessions. The
// snapshot may go stale immediately; pushes to a session that has since
// closed simply fail and are reported per session.
func (h *Hub) LiveSessions(recipientID string) []notification.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.sessions[recipientID]
	if !ok {
		return nil
	}
	sessions := make([]notification.Session, 0, len(clients))
	for client := range clients {
		sessions = append(sessions, client)
	}
	return sessions
}

// SweepStale pings every session and drops the ones whose transport no
// longer accepts writes. Run periodically; the pumps already drop dead
// connections on their own, this just tightens the window.
func (h *Hub) SweepStale() int {
	h.mu.RLock()
	var all []*Client
	for _, clients := range h.sessions {
		for client := range clients {
			all = append(all, client)
		}
	}
	h.mu.RUnlock()

	dropped := 0
	deadline := time.Now().Add(writeWait)
	for _, client := range all {
		if err := client.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			h.Unregister(client)
			dropped++
		}
	}
	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("swept stale websocket sessions")
	}
	return dropped
}

// Upgrader returns the websocket upgrader used by the HTTP handshake
// handler. Origin checking is delegated to the CORS layer in front of it.
func Upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

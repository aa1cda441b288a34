package realtime

import (
	"net/http"
	"sync"

	"voltrent-backend/internal/logger"

	"github.com/gorilla/websocket"
)

// Frame is the envelope for every message pushed over a websocket session.
type Frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type clientFrame struct {
	Action    string `json:"action"`
	BookingID int32  `json:"booking_id"`
}

// Hub tracks which users are online and which sessions watch which booking.
// All state is process-local; scaling out needs an external presence store.
type Hub struct {
	mu           sync.RWMutex
	userConns    map[int32]map[*websocket.Conn]struct{}
	bookingConns map[int32]map[*websocket.Conn]struct{}
	upgrader     websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		userConns:    make(map[int32]map[*websocket.Conn]struct{}),
		bookingConns: make(map[int32]map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeUser upgrades the request and keeps the session registered until the
// peer goes away. The read loop only consumes subscribe_booking and
// unsubscribe_booking frames; everything else a client sends is ignored.
func (h *Hub) ServeUser(w http.ResponseWriter, r *http.Request, userID int32) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	h.mu.Lock()
	if h.userConns[userID] == nil {
		h.userConns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.userConns[userID][conn] = struct{}{}
	h.mu.Unlock()
	logger.Debug("Websocket session opened", "user_id", userID)

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		switch frame.Action {
		case "subscribe_booking":
			h.subscribeBooking(conn, frame.BookingID)
		case "unsubscribe_booking":
			h.unsubscribeBooking(conn, frame.BookingID)
		}
	}

	h.evict(userID, conn)
	logger.Debug("Websocket session closed", "user_id", userID)
}

func (h *Hub) subscribeBooking(conn *websocket.Conn, bookingID int32) {
	if bookingID == 0 {
		return
	}
	h.mu.Lock()
	if h.bookingConns[bookingID] == nil {
		h.bookingConns[bookingID] = make(map[*websocket.Conn]struct{})
	}
	h.bookingConns[bookingID][conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unsubscribeBooking(conn *websocket.Conn, bookingID int32) {
	h.mu.Lock()
	if conns, ok := h.bookingConns[bookingID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.bookingConns, bookingID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) evict(userID int32, conn *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.userConns[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.userConns, userID)
		}
	}
	for bookingID, conns := range h.bookingConns {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.bookingConns, bookingID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}

// PushToUser writes the frame to every live session of the user. Dead
// connections are evicted on write error; delivery is best-effort.
func (h *Hub) PushToUser(userID int32, frame Frame) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.userConns[userID]))
	for conn := range h.userConns[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(frame); err != nil {
			h.evict(userID, conn)
		}
	}
}

// BroadcastBooking writes the frame to every session subscribed to the
// booking channel.
func (h *Hub) BroadcastBooking(bookingID int32, frame Frame) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.bookingConns[bookingID]))
	for conn := range h.bookingConns[bookingID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(frame); err != nil {
			h.unsubscribeBooking(conn, bookingID)
			conn.Close()
		}
	}
}

// Online reports whether the user has at least one live session.
func (h *Hub) Online(userID int32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID]) > 0
}

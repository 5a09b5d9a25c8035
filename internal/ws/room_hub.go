package ws

import (
	"encoding/json"
	"sync"
)

// client is one websocket subscriber to a chat room.
type client struct {
	UserID uint
	Send   chan []byte
}

// room fans stored chat messages out to its subscribers.
type room struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func (r *room) join(c *client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *room) leave(c *client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *room) broadcast(data []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.clients {
		select {
		case c.Send <- data:
		default:
			// slow consumer, drop the frame
		}
	}
}

// RoomHub holds chat-room subscriber sets by room ID. The chat service calls
// Broadcast after a message is stored; connected clients get it pushed.
type RoomHub struct {
	mu    sync.RWMutex
	rooms map[uint]*room
}

func NewRoomHub() *RoomHub {
	return &RoomHub{rooms: make(map[uint]*room)}
}

func (h *RoomHub) getOrCreate(roomID uint) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[roomID]; ok {
		return r
	}
	r := &room{clients: make(map[*client]struct{})}
	h.rooms[roomID] = r
	return r
}

// Broadcast sends payload (JSON-encoded) to every subscriber of the room.
func (h *RoomHub) Broadcast(roomID uint, payload interface{}) {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.broadcast(data)
}

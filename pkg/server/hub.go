package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// MessageType is the type of a WebSocket message.
type MessageType string

const (
	// MessageBody carries the new inner HTML of <body>.
	MessageBody MessageType = "body"

	// MessageHead carries the new inner HTML of <head>.
	MessageHead MessageType = "head"

	// MessageClick is sent by clients when an element is clicked.
	MessageClick MessageType = "click"
)

// Message is exchanged with browsers over the WebSocket.
type Message struct {
	Type MessageType `json:"type"`
	HTML string      `json:"html,omitempty"`
	ID   string      `json:"id,omitempty"`
}

const writeWait = 5 * time.Second

// hub tracks connected clients and fans messages out to them.
type hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader

	// onDrop is called after a client is removed.
	onDrop func()
}

func newHub(checkOrigin func(*http.Request) bool) *hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
	if ok && h.onDrop != nil {
		h.onDrop()
	}
}

// send writes msgs to one client.
func (h *hub) send(conn *websocket.Conn, msgs ...Message) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
	}
	return nil
}

// broadcast sends msgs to all clients, dropping the ones that fail.
func (h *hub) broadcast(msgs ...Message) int {
	data := make([][]byte, 0, len(msgs))
	for _, msg := range msgs {
		b, err := json.Marshal(msg)
		if err != nil {
			return 0
		}
		data = append(data, b)
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	var failed []*websocket.Conn
	for _, client := range clients {
		for _, b := range data {
			_ = client.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.WriteMessage(websocket.TextMessage, b); err != nil {
				failed = append(failed, client)
				break
			}
		}
	}
	h.writeMu.Unlock()

	for _, client := range failed {
		h.remove(client)
	}
	return len(clients) - len(failed)
}

// count returns the number of connected clients.
func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close closes all client connections.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

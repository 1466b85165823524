// Package socket 按会话维度广播已落库消息的websocket集线器
package socket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

type Client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Client]struct{}),
	}
}

// Subscribe 将连接挂到指定会话并启动写循环，连接断开时自动退订
func (h *Hub) Subscribe(sessionID string, conn *websocket.Conn) *Client {
	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]struct{})
	}
	h.sessions[sessionID][client] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.Unsubscribe(sessionID, client)
		for msg := range client.send {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, []byte{})
	}()

	return client
}

func (h *Hub) Unsubscribe(sessionID string, c *Client) {
	h.mu.Lock()
	if clients, ok := h.sessions[sessionID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	h.mu.Unlock()

	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// Publish 向会话的所有订阅者广播事件，慢订阅者直接丢帧不阻塞
func (h *Hub) Publish(sessionID string, event interface{}) {
	raw, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal socket event", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.sessions[sessionID] {
		select {
		case client.send <- raw:
		default:
		}
	}
}

package connection

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client represents a connected socket
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	RoomID string
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
	log        *logrus.Entry
}

// NewManager creates a new connection manager
func NewManager(log *logrus.Entry) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		log:        log,
	}
}

// Start processes registrations until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.remove(client.ID)
		case <-ctx.Done():
			m.mutex.Lock()
			for id, client := range m.clients {
				close(client.Send)
				delete(m.clients, id)
			}
			m.mutex.Unlock()
			return
		}
	}
}

func (m *Manager) remove(clientID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if client, ok := m.clients[clientID]; ok {
		delete(m.clients, clientID)
		close(client.Send)
	}
}

// SendToClient queues a message for one client. A client whose buffer is
// full misses the message rather than stalling the room.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	return m.offer(client, message)
}

// SendToRoom queues a message for every client in a room
func (m *Manager) SendToRoom(roomID string, message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := 0
	for _, client := range m.clients {
		if client.RoomID == roomID && m.offer(client, message) {
			sent++
		}
	}
	return sent
}

func (m *Manager) offer(client *Client, message []byte) bool {
	select {
	case client.Send <- message:
		return true
	default:
		m.log.WithField("client", client.ID).Warn("send buffer full, dropping message")
		return false
	}
}

// SetRoom records which room a client is in. An empty roomID clears it.
func (m *Manager) SetRoom(clientID string, roomID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		client.RoomID = roomID
		return true
	}
	return false
}

// RoomOf returns the room a client is in, or "".
func (m *Manager) RoomOf(clientID string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if client, ok := m.clients[clientID]; ok {
		return client.RoomID
	}
	return ""
}

// Count returns the number of registered clients.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

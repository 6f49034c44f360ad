package ws

import (
	"context"
	"sync"

	"internship_admin/internal/logger"
)

// Message is one frame pushed to console browsers.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity,omitempty"`
	Data   any    `json:"data"`
}

type directMessage struct {
	client  *Client
	message any
}

type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan any
	direct     chan directMessage
	done       chan struct{}
	mu         sync.RWMutex

	// snapshot строит кадр с текущим состоянием для нового клиента
	snapshot func() any
}

func NewWebSocketManager(snapshot func() any) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan any, 256),
		direct:     make(chan directMessage),
		done:       make(chan struct{}),
		snapshot:   snapshot,
	}
}

// Run serves register / unregister / broadcast until ctx is done, then
// closes every client.
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer close(manager.done)
	for {
		select {
		case <-ctx.Done():
			manager.mu.Lock()
			for id, client := range manager.clients {
				close(client.Send)
				delete(manager.clients, id)
			}
			manager.mu.Unlock()
			logger.Info("WebSocket manager stopped")
			return

		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Debug("Client registered", "client_id", client.ID, "total", total)
			if manager.snapshot != nil {
				manager.sendTo(client, manager.snapshot())
			}

		case client := <-manager.unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[client.ID]; ok {
				close(client.Send)
				delete(manager.clients, client.ID)
				logger.Debug("Client unregistered", "client_id", client.ID, "total", len(manager.clients))
			}
			manager.mu.Unlock()

		case message := <-manager.broadcast:
			manager.broadcastMessage(message)

		case d := <-manager.direct:
			manager.mu.RLock()
			if current, ok := manager.clients[d.client.ID]; ok && current == d.client {
				manager.sendTo(d.client, d.message)
			}
			manager.mu.RUnlock()
		}
	}
}

// Broadcast queues message for every connected client. It never blocks
// after the manager has stopped.
func (manager *WebSocketManager) Broadcast(message any) {
	select {
	case manager.broadcast <- message:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) broadcastMessage(message any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for _, client := range manager.clients {
		manager.sendTo(client, message)
	}
}

// sendTo is called with manager.mu held or from Run.
func (manager *WebSocketManager) sendTo(client *Client, message any) {
	select {
	case client.Send <- message:
	default:
		// Канал заполнен, клиент отключается
		go manager.drop(client)
		logger.Warn("Client disconnected due to full send channel", "client_id", client.ID)
	}
}

func (manager *WebSocketManager) drop(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// GetClientCount возвращает количество подключенных клиентов
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// IsClientConnected проверяет, подключен ли клиент
func (manager *WebSocketManager) IsClientConnected(clientID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	_, exists := manager.clients[clientID]
	return exists
}

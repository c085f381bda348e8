package ws

import (
	"sync"

	"zakup_backend/internal/logger"
)

// WebSocketManager держит активные подключения, ключ - ID пользователя.
// Используется для push-доставки уведомлений (новое предложение,
// завершение оценки) без опроса REST API.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan any
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan any),
	}
}

func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.ID, "total", total)

		case client := <-manager.unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[client.ID]; ok {
				close(client.Send)
				delete(manager.clients, client.ID)
			}
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.ID, "total", total)

		case message := <-manager.broadcast:
			manager.broadcastMessage(message)
		}
	}
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (manager *WebSocketManager) Broadcast(message any) {
	manager.broadcast <- message
}

// BroadcastToClient отправляет сообщение конкретному пользователю.
// Если пользователь не подключен, сообщение молча отбрасывается:
// он получит его через обычные уведомления.
func (manager *WebSocketManager) BroadcastToClient(clientID string, message any) {
	manager.mu.RLock()
	client, ok := manager.clients[clientID]
	manager.mu.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		// Канал заполнен, клиент отключается
		go func() {
			manager.unregister <- client
		}()
	}
}

func (manager *WebSocketManager) broadcastMessage(message any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for clientID, client := range manager.clients {
		select {
		case client.Send <- message:
		default:
			go func(c *Client) {
				manager.unregister <- c
			}(client)
			logger.Debug("ws client dropped, send channel full", "user_id", clientID)
		}
	}
}

// GetClientCount возвращает количество подключенных клиентов
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// IsClientConnected проверяет, подключен ли пользователь
func (manager *WebSocketManager) IsClientConnected(clientID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	_, exists := manager.clients[clientID]
	return exists
}

package services

import (
	"encoding/json"
	"log"
	"sync"

	"blogapi/models"
)

// HubService fans post events out to websocket subscribers. Only run touches
// the hub's client map or closes a client's Send channel, so every write to
// Send goes through run as well.
type HubService struct {
	hub      *models.Hub
	counts   chan chan int
	stopOnce sync.Once
	stopped  chan struct{}
}

func NewHubService() *HubService {
	hub := models.NewHub()
	service := &HubService{
		hub:     hub,
		counts:  make(chan chan int),
		stopped: make(chan struct{}),
	}

	go service.run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) run() {
	defer close(h.stopped)

	for {
		select {
		case client := <-h.hub.Register:
			h.hub.Clients[client] = true

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)

		case direct := <-h.hub.Direct:
			if h.hub.Clients[direct.Client] {
				h.deliver(direct.Client, direct.Message)
			}

		case reply := <-h.counts:
			reply <- len(h.hub.Clients)

		case <-h.hub.Done:
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

// Stop closes every subscriber and waits for run to return. It is safe to
// call more than once.
func (h *HubService) Stop() {
	h.stopOnce.Do(func() { close(h.hub.Done) })
	<-h.stopped
}

// Register subscribes client; it reports false once the hub is stopped.
func (h *HubService) Register(client *models.Client) bool {
	select {
	case h.hub.Register <- client:
		return true
	case <-h.hub.Done:
		return false
	}
}

func (h *HubService) Unregister(client *models.Client) {
	select {
	case h.hub.Unregister <- client:
	case <-h.hub.Done:
	}
}

// SubscriberCount reports how many clients are registered, or 0 once the hub
// is stopped.
func (h *HubService) SubscriberCount() int {
	reply := make(chan int, 1)
	select {
	case h.counts <- reply:
		return <-reply
	case <-h.hub.Done:
		return 0
	}
}

// Publish queues an event for every subscriber. Events are dropped when the
// queue is full.
func (h *HubService) Publish(eventType string, data interface{}) {
	messageBytes, ok := encodeEvent(eventType, data, "")
	if !ok {
		return
	}

	select {
	case h.hub.Broadcast <- messageBytes:
	default:
		log.Printf("Dropping %s event: broadcast queue full", eventType)
	}
}

// Reply sends an event to one subscriber. It is a no-op for clients the hub
// has already dropped.
func (h *HubService) Reply(client *models.Client, eventType string, data interface{}) {
	messageBytes, ok := encodeEvent(eventType, data, client.ID)
	if !ok {
		return
	}

	select {
	case h.hub.Direct <- models.DirectMessage{Client: client, Message: messageBytes}:
	case <-h.hub.Done:
	}
}

func encodeEvent(eventType string, data interface{}, clientID string) ([]byte, bool) {
	messageBytes, err := json.Marshal(models.WSMessage{
		Type:     eventType,
		Data:     data,
		ClientID: clientID,
	})
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return nil, false
	}
	return messageBytes, true
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; ok {
		delete(h.hub.Clients, client)
		close(client.Send)
		log.Printf("Client %s unregistered", client.ID)
	}
}

// deliver drops a client whose buffer is full.
func (h *HubService) deliver(client *models.Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.unregisterClient(client)
	}
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		h.deliver(client, message)
	}
}

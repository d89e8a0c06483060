package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler streams post_created, post_updated and post_deleted
// events to anonymous subscribers.
type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin.
				return origin == "" || allowed[origin]
			},
		},
	}
}

// HandleWebSocket godoc
// @Summary Live post feed
// @Description Upgrades to a websocket that receives post_created, post_updated and post_deleted events.
// @Tags posts
// @Router /post/ws [get]
func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn)
	if !wh.hubService.Register(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	log.Printf("Client %s subscribed to post feed", client.ID)

	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		wh.hubService.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", client.ID, err)
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling WebSocket message from client %s: %v", client.ID, err)
			continue
		}

		switch wsMessage.Type {
		case models.EventClientConnect:
			wh.hubService.Reply(client, models.EventClientConnected, map[string]string{"client_id": client.ID})

		default:
			log.Printf("Ignoring message type %q from client %s", wsMessage.Type, client.ID)
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per event so subscribers can parse each as JSON.
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

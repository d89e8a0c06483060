package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventPostCreated = "post_created"
	EventPostUpdated = "post_updated"
	EventPostDeleted = "post_deleted"

	EventClientConnect   = "client_connect"
	EventClientConnected = "client_connected"
)

// Hub holds the post feed subscribers. Its maps are owned by the goroutine
// started by services.NewHubService.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	Direct     chan DirectMessage
	Done       chan struct{}
}

// DirectMessage is a frame for a single subscriber. It is delivered only if
// the subscriber is still registered when the hub handles it.
type DirectMessage struct {
	Client  *Client
	Message []byte
}

type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Direct:     make(chan DirectMessage),
		Done:       make(chan struct{}),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

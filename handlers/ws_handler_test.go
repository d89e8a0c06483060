package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newFeedServer(t *testing.T) (*httptest.Server, *services.HubService) {
	t.Helper()

	hub := services.NewHubService()
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.GET("/api/post/ws", NewWebSocketHandler(hub, []string{"http://localhost:5173"}).HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/post/ws"
}

func readMessage(t *testing.T, conn *websocket.Conn) models.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg models.WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocket_ReceivesPostEvents(t *testing.T) {
	srv, hub := newFeedServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: models.EventClientConnect}))
	hello := readMessage(t, conn)
	assert.Equal(t, models.EventClientConnected, hello.Type)
	assert.NotEmpty(t, hello.ClientID)

	hub.Publish(models.EventPostDeleted, map[string]uint{"_id": 3})

	event := readMessage(t, conn)
	assert.Equal(t, models.EventPostDeleted, event.Type)
	assert.Equal(t, map[string]interface{}{"_id": float64(3)}, event.Data)
}

func TestWebSocket_RejectsUnknownOrigin(t *testing.T) {
	srv, _ := newFeedServer(t)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func handshake(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(models.WSMessage{Type: models.EventClientConnect}))
	assert.Equal(t, models.EventClientConnected, readMessage(t, conn).Type)
}

func TestWebSocket_SlowSubscriberIsDroppedWithoutCrashing(t *testing.T) {
	srv, hub := newFeedServer(t)

	slow, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer slow.Close()
	handshake(t, slow)
	require.Equal(t, 1, hub.SubscriberCount())

	// slow never reads again, so its socket and Send buffer fill up
	payload := map[string]string{"content": strings.Repeat("x", 64<<10)}
	require.Eventually(t, func() bool {
		for i := 0; i < 50; i++ {
			hub.Publish(models.EventPostCreated, payload)
		}
		return hub.SubscriberCount() == 0
	}, 10*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(hub.GetHub().Broadcast) == 0
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, slow.SetWriteDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, slow.WriteJSON(models.WSMessage{Type: models.EventClientConnect}))

	other, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer other.Close()
	handshake(t, other)

	hub.Publish(models.EventPostDeleted, map[string]uint{"_id": 9})
	assert.Equal(t, models.EventPostDeleted, readMessage(t, other).Type)
}

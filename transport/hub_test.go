package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarrakiran3/polling-system-backend/models"
	"github.com/yarrakiran3/polling-system-backend/transport"
)

func startHub(t *testing.T, allowedOrigin string) (*transport.Hub, string) {
	t.Helper()

	hub := transport.NewHub(allowedOrigin)
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func recvInbound(t *testing.T, hub *transport.Hub) transport.Message {
	t.Helper()

	select {
	case msg := <-hub.Inbound():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inbound message")
		return transport.Message{}
	}
}

type clientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func recvFrame(t *testing.T, ws *websocket.Conn) clientFrame {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame clientFrame
	require.NoError(t, ws.ReadJSON(&frame))
	return frame
}

func TestInboundEnvelopeDelivery(t *testing.T) {
	hub, url := startHub(t, "*")
	ws := dial(t, url)

	err := ws.WriteMessage(websocket.TextMessage,
		[]byte(`{"event":"student:register","data":{"name":"Ada"}}`))
	require.NoError(t, err)

	msg := recvInbound(t, hub)
	assert.NotEmpty(t, msg.ConnID)
	assert.Equal(t, models.EventRegister, msg.Event)
	assert.JSONEq(t, `{"name":"Ada"}`, string(msg.Data))
}

func TestDisconnectDeliversSyntheticEvent(t *testing.T) {
	hub, url := startHub(t, "*")
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"event":"get-students"}`)))
	first := recvInbound(t, hub)

	ws.Close()

	msg := recvInbound(t, hub)
	assert.Equal(t, models.EventDisconnect, msg.Event)
	assert.Equal(t, first.ConnID, msg.ConnID, "disconnect carries the same handle as the client's events")
}

func TestSendToReachesOneClient(t *testing.T) {
	hub, url := startHub(t, "*")
	ws1 := dial(t, url)
	ws2 := dial(t, url)

	// Learn each connection's handle from an inbound event.
	require.NoError(t, ws1.WriteMessage(websocket.TextMessage, []byte(`{"event":"get-students"}`)))
	conn1 := recvInbound(t, hub).ConnID

	hub.SendTo(conn1, "poll:error", models.ErrorPayload{Message: "just you"})

	frame := recvFrame(t, ws1)
	assert.Equal(t, "poll:error", frame.Event)
	assert.JSONEq(t, `{"message":"just you"}`, string(frame.Data))

	// The other client must see nothing.
	ws2.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var stray clientFrame
	require.Error(t, ws2.ReadJSON(&stray))
}

func TestSendToUnknownHandleIsNoOp(t *testing.T) {
	hub, _ := startHub(t, "*")

	hub.SendTo("no-such-conn", "poll:error", models.ErrorPayload{Message: "lost"})
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, url := startHub(t, "*")
	ws1 := dial(t, url)
	ws2 := dial(t, url)

	// Wait for both registrations to land before broadcasting.
	require.NoError(t, ws1.WriteMessage(websocket.TextMessage, []byte(`{"event":"get-students"}`)))
	require.NoError(t, ws2.WriteMessage(websocket.TextMessage, []byte(`{"event":"get-students"}`)))
	recvInbound(t, hub)
	recvInbound(t, hub)

	hub.Broadcast("poll:timer", models.PollTimerPayload{PollID: "poll-1", Remaining: 10})

	for _, ws := range []*websocket.Conn{ws1, ws2} {
		frame := recvFrame(t, ws)
		assert.Equal(t, "poll:timer", frame.Event)

		var payload models.PollTimerPayload
		require.NoError(t, json.Unmarshal(frame.Data, &payload))
		assert.Equal(t, 10, payload.Remaining)
	}
}

func TestMalformedFramesDropped(t *testing.T) {
	hub, url := startHub(t, "*")
	ws := dial(t, url)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{not json`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"data":{"x":1}}`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"event":"get-students"}`)))

	// Only the well-formed, named event comes through.
	msg := recvInbound(t, hub)
	assert.Equal(t, models.EventGetStudents, msg.Event)
}

func TestOriginCheck(t *testing.T) {
	_, url := startHub(t, "http://classroom.example")

	header := http.Header{"Origin": []string{"http://evil.example"}}
	ws, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	if ws != nil {
		ws.Close()
	}
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	header = http.Header{"Origin": []string{"http://classroom.example"}}
	ws, _, err = websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	ws.Close()
}

func TestCloseDropsConnections(t *testing.T) {
	hub, url := startHub(t, "*")
	ws := dial(t, url)

	hub.Close()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := ws.ReadMessage()
	require.Error(t, err)
}

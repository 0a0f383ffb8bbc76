package events

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
)

// Helper function to read an event from a WebSocket connection with a
// timeout.
func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	var evt Event
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read event from WebSocket")
	err = json.Unmarshal(p, &evt)
	require.NoError(t, err, "Failed to unmarshal Event JSON")
	return evt
}

func TestHubOwnerScopedDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// For simplicity, tests pass the owner id in the query string.
		ownerID := r.URL.Query().Get("owner_id")
		ServeWs(hub, w, r, ownerID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	// Two connections for owner A, one for owner B.
	connA1, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?owner_id=owner-A", nil)
	require.NoError(t, err, "Client A1 failed to connect")
	defer connA1.Close()

	connA2, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?owner_id=owner-A", nil)
	require.NoError(t, err, "Client A2 failed to connect")
	defer connA2.Close()

	connB, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?owner_id=owner-B", nil)
	require.NoError(t, err, "Client B failed to connect")
	defer connB.Close()

	// Give the hub a moment to process the registrations.
	time.Sleep(100 * time.Millisecond)

	hub.Publish("owner-A", "company", ActionCreated, map[string]string{"id": "c-1", "name": "Globex"})

	for _, conn := range []*websocket.Conn{connA1, connA2} {
		evt := readEvent(t, conn)
		assert.Equal(t, "company", evt.Resource)
		assert.Equal(t, ActionCreated, evt.Action)
		assert.JSONEq(t, `{"id":"c-1","name":"Globex"}`, string(evt.Payload))
	}

	// Owner B must never see owner A's events.
	connB.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err, "Owner B should time out without receiving anything")
}

// A client that never drains its send channel must be dropped without
// stalling the hub loop: registrations still get serviced afterwards
// and the lagging client's channel is closed.
func TestLaggingClientIsDroppedWithoutBlockingHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	lagging := &Client{Hub: hub, OwnerID: "owner-L", Send: make(chan []byte)}
	hub.register <- lagging

	hub.Publish("owner-L", "company", ActionCreated, map[string]string{"id": "c-1"})

	next := &Client{Hub: hub, OwnerID: "owner-L", Send: make(chan []byte, 1)}
	select {
	case hub.register <- next:
	case <-time.After(1 * time.Second):
		t.Fatal("hub stopped servicing registrations after a lagging client")
	}

	select {
	case _, ok := <-lagging.Send:
		assert.False(t, ok, "lagging client's send channel should be closed")
	case <-time.After(1 * time.Second):
		t.Fatal("lagging client was not dropped")
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish("owner-X", "contact", ActionUpdated, map[string]int{"seq": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

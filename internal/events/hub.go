// Package events pushes resource change notifications to connected web
// clients over websockets. Connections are grouped by owner: a client
// only ever sees events for resources it owns. The hub holds nothing
// but live connections; all domain state lives in the database.
package events

import (
	"encoding/json"
	"sync"

	"jobtrackr/pkg/logger"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is the wire message sent to subscribers.
type Event struct {
	Resource string          `json:"resource"`
	Action   string          `json:"action"`
	Payload  json.RawMessage `json:"payload"`

	ownerID string
}

type Hub struct {
	owners     map[string]map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		owners:     make(map[string]map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.owners[client.OwnerID] == nil {
				h.owners[client.OwnerID] = make(map[*Client]bool)
			}
			h.owners[client.OwnerID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.drop(client)

		case evt := <-h.broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling event broadcast: %v", err)
				continue
			}

			// Snapshot recipients so no I/O happens under the lock.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.owners[evt.ownerID]))
			for client := range h.owners[evt.ownerID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// Lagging client; remove it inline rather than
					// re-enqueue on unregister, which only this
					// goroutine services and would deadlock the hub.
					logger.Sugar.Warnf("Client of owner %s has a full send buffer. Dropping it.", client.OwnerID)
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client and closes its send channel. Safe to call more
// than once for the same client: the readPump's deferred unregister can
// race a broadcast-path drop.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.owners[client.OwnerID][client]; ok {
		delete(h.owners[client.OwnerID], client)
		close(client.Send)
		if len(h.owners[client.OwnerID]) == 0 {
			delete(h.owners, client.OwnerID)
		}
	}
}

// Publish queues a change event for every live connection of ownerID.
// It never blocks: if the hub is saturated the event is dropped, since
// the feed is advisory and clients re-fetch through the REST API.
func (h *Hub) Publish(ownerID, resource, action string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s %s event: %v", resource, action, err)
		return
	}
	evt := Event{Resource: resource, Action: action, Payload: body, ownerID: ownerID}
	select {
	case h.broadcast <- evt:
	default:
		logger.Sugar.Warnf("Event feed saturated, dropping %s %s event for owner %s", resource, action, ownerID)
	}
}

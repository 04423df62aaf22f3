package posefeed

import (
	"context"
	"encoding/json"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// run serves the hub until ctx ends, then closes every client.
func (h *Hub) run(ctx context.Context) {
	defer func() {
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case e := <-h.broadcast:
			msg, err := json.Marshal(e)
			if err != nil {
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

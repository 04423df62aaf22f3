package posefeed

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	feed *Feed
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte
}

// readPump decodes camera messages until the connection fails. It is the
// only reader of the connection.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.feed.hub.unregister <- c:
		case <-c.feed.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.feed.logf("posefeed: read: %v", err)
			}
			return
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.feed.logf("posefeed: bad message: %v", err)
			continue
		}
		u, err := decodeEvent(event)
		if err != nil {
			c.feed.logf("posefeed: %v", err)
			continue
		}
		c.feed.push(u)
	}
}

func decodeEvent(event Event) (Update, error) {
	switch event.Name {
	case "setPose":
		var pose Pose
		if err := mapstructure.Decode(event.Data, &pose); err != nil {
			return Update{}, fmt.Errorf("setPose: %w", err)
		}
		return Update{Pose: &pose}, nil
	case "key":
		var in struct {
			Key string `mapstructure:"key"`
		}
		if err := mapstructure.Decode(event.Data, &in); err != nil {
			return Update{}, fmt.Errorf("key: %w", err)
		}
		r, n := utf8.DecodeRuneInString(in.Key)
		if n == 0 || r == utf8.RuneError {
			return Update{}, fmt.Errorf("key: bad key %q", in.Key)
		}
		return Update{Key: r}, nil
	}
	return Update{}, fmt.Errorf("unknown event %q", event.Name)
}

// writePump sends hub messages and pings to the peer. It is the only writer
// of the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

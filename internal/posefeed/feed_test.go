package posefeed

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fbscene/gfx/vecmath"

	"github.com/gorilla/websocket"
)

func startFeed(t *testing.T) (*Feed, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	f := New(nil)
	go f.Run(ctx)
	srv := httptest.NewServer(f.Handler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		cancel()
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})
	return f, conn
}

func nextUpdate(t *testing.T, f *Feed) Update {
	t.Helper()
	select {
	case u := <-f.Updates():
		return u
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for an update")
	}
	return Update{}
}

func TestSetPose(t *testing.T) {
	f, conn := startFeed(t)
	msg := `{"name":"setPose","data":{"position":{"x":1,"y":2,"z":-3},"rotation":{"x":0.2,"y":1.5},"fov":2,"distort":-0.5}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
	u := nextUpdate(t, f)
	if u.Pose == nil {
		t.Fatalf("update = %+v, want a pose", u)
	}
	want := Pose{
		Position: vecmath.V3(1, 2, -3),
		Rotation: vecmath.V3(0.2, 1.5, 0),
		FOV:      2,
		Distort:  -0.5,
	}
	if *u.Pose != want {
		t.Fatalf("pose = %+v, want %+v", *u.Pose, want)
	}
}

func TestBadMessagesDropped(t *testing.T) {
	f, conn := startFeed(t)
	for _, msg := range []string{
		`not json`,
		`{"name":"teleport","data":{}}`,
		`{"name":"setPose","data":{"fov":"wide"}}`,
		`{"name":"key","data":{"key":""}}`,
		`{"name":"key","data":{"key":"w"}}`,
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write %q: %v", msg, err)
		}
	}
	u := nextUpdate(t, f)
	if u.Pose != nil || u.Key != 'w' {
		t.Fatalf("update = %+v, want key w", u)
	}
}

func TestPublishFrame(t *testing.T) {
	f, conn := startFeed(t)
	got := make(chan Event, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var e Event
		if json.Unmarshal(data, &e) == nil {
			got <- e
		}
	}()

	// The client registers with the hub shortly after the handshake, so
	// keep publishing until one frame arrives.
	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case e := <-got:
			if e.Name != "frame" {
				t.Fatalf("event = %+v", e)
			}
			data, ok := e.Data.(map[string]interface{})
			if !ok || data["lines"] != float64(34) || data["points"] != float64(900) {
				t.Fatalf("frame data = %#v", e.Data)
			}
			return
		case <-tick.C:
			f.PublishFrame(FrameStats{MS: 1.5, Lines: 34, Points: 900})
		case <-deadline:
			t.Fatalf("no frame received")
		}
	}
}

func TestDecodeEvent(t *testing.T) {
	u, err := decodeEvent(Event{Name: "key", Data: map[string]interface{}{"key": "+"}})
	if err != nil || u.Key != '+' {
		t.Fatalf("decodeEvent = %+v, %v", u, err)
	}
	u, err = decodeEvent(Event{Name: "setPose", Data: map[string]interface{}{"fov": 0.5}})
	if err != nil || u.Pose == nil || u.Pose.FOV != 0.5 || u.Pose.Position != (vecmath.Vec3{}) {
		t.Fatalf("decodeEvent = %+v, %v", u, err)
	}
	if _, err := decodeEvent(Event{Name: "nope"}); err == nil {
		t.Fatalf("unknown event accepted")
	}
}

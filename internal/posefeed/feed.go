// Package posefeed accepts camera poses and key presses from websocket
// clients and reports frame statistics back to them.
package posefeed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"fbscene/hal"

	"github.com/gorilla/websocket"
)

// Feed is a websocket endpoint on /ws.
type Feed struct {
	hub     *Hub
	log     hal.Logger
	updates chan Update
	done    chan struct{}

	upgrader websocket.Upgrader
}

// New returns a feed; Run must be called before clients connect.
func New(log hal.Logger) *Feed {
	return &Feed{
		hub:     newHub(),
		log:     log,
		updates: make(chan Update, 64),
		done:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Updates delivers decoded camera changes. Updates are dropped while the
// channel is full.
func (f *Feed) Updates() <-chan Update { return f.updates }

// Run serves the hub until ctx ends.
func (f *Feed) Run(ctx context.Context) {
	defer close(f.done)
	f.hub.run(ctx)
}

// Handler routes /ws to the feed.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", f.serveWs)
	return mux
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx ends.
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("posefeed: listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: f.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go f.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	f.logf("posefeed: listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("posefeed: %w", err)
	}
	return nil
}

// PublishFrame sends st to every client. It never blocks; frames are
// dropped while the hub is busy.
func (f *Feed) PublishFrame(st FrameStats) {
	select {
	case f.hub.broadcast <- Event{Name: "frame", Data: st}:
	default:
	}
}

func (f *Feed) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logf("posefeed: upgrade: %v", err)
		return
	}
	client := &Client{feed: f, conn: conn, send: make(chan []byte, 256)}
	select {
	case f.hub.register <- client:
	case <-f.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (f *Feed) push(u Update) {
	select {
	case f.updates <- u:
	default:
		f.logf("posefeed: update dropped")
	}
}

func (f *Feed) logf(format string, args ...interface{}) {
	if f.log == nil {
		return
	}
	f.log.WriteLineString(fmt.Sprintf(format, args...))
}

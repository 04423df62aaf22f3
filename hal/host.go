package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
}

// newHost returns a host HAL backed by heap memory. Log lines go to stderr.
func newHost(s Screen) *hostHAL {
	s = s.orDefault()
	return &hostHAL{
		logger: &hostLogger{w: os.Stderr},
		fb:     newHostFramebuffer(s.Width, s.Height),
		kbd:    newHostKeyboard(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb Framebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// NewLogger returns a Logger that serialises lines onto w.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

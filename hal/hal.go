package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrQuit is returned by a step function to stop its runner cleanly.
var ErrQuit = errors.New("hal: quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatARGB8888 is 32bpp packed in a native-endian uint32:
	// aaaaaaaarrrrrrrrggggggggbbbbbbbb.
	PixelFormatARGB8888 PixelFormat = iota + 1
)

// Framebuffer is a 32-bit pixel buffer plus a "present" hook.
//
// Pixels returns Height rows of StrideBytes/4 words each; drawing into it
// becomes visible after Present.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Pixels() []uint32
	Clear()
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyEvent is a keyboard event. Text keys carry Rune and KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL is the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}

// Screen is the size of a host framebuffer.
type Screen struct {
	Width  int
	Height int
}

func (s Screen) orDefault() Screen {
	if s.Width <= 0 {
		s.Width = 320
	}
	if s.Height <= 0 {
		s.Height = 240
	}
	return s
}

// ErrUnsupportedFormat reports a device framebuffer whose pixel layout is
// not ARGB8888.
var ErrUnsupportedFormat = errors.New("hal: unsupported framebuffer format")

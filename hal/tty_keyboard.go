package hal

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// ttyKeyboard reads key presses from a terminal in raw mode.
type ttyKeyboard struct {
	ch    chan KeyEvent
	r     io.Reader
	fd    int
	state *term.State
}

func openTTYKeyboard(f *os.File) (*ttyKeyboard, error) {
	k := &ttyKeyboard{ch: make(chan KeyEvent, 64), r: f, fd: int(f.Fd())}
	if term.IsTerminal(k.fd) {
		st, err := term.MakeRaw(k.fd)
		if err != nil {
			return nil, fmt.Errorf("tty: raw mode: %w", err)
		}
		k.state = st
	}
	go k.read()
	return k, nil
}

func (k *ttyKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *ttyKeyboard) read() {
	var d keyDecoder
	buf := make([]byte, 64)
	for {
		n, err := k.r.Read(buf)
		evs := d.decode(buf[:n])
		if err != nil {
			evs = append(evs, d.flush()...)
		}
		for _, ev := range evs {
			select {
			case k.ch <- ev:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// Close restores the terminal mode.
func (k *ttyKeyboard) Close() error {
	if k.state == nil {
		return nil
	}
	return term.Restore(k.fd, k.state)
}

var csiKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeKeys = map[string]KeyCode{
	"1": KeyHome,
	"4": KeyEnd,
	"5": KeyPageUp,
	"6": KeyPageDown,
	"7": KeyHome,
	"8": KeyEnd,
}

// maxCSIParams bounds how many parameter bytes an incomplete sequence may
// hold before it is discarded.
const maxCSIParams = 16

// keyDecoder splits raw terminal input into key presses. Cursor keys arrive
// as ESC [ x, ESC O x or ESC [ n ~. A control sequence cut short by the end
// of a read is kept until the next one, so a lone ESC only becomes the escape
// key once the following byte shows it is not an introducer.
type keyDecoder struct {
	pending []byte
}

func (d *keyDecoder) decode(in []byte) []KeyEvent {
	b := append(d.pending, in...)
	d.pending = nil
	var out []KeyEvent
	for len(b) > 0 {
		if b[0] != 0x1b {
			if b[0] == '\r' || b[0] == '\n' {
				out = append(out, KeyEvent{Code: KeyEnter, Press: true})
				b = b[1:]
				continue
			}
			r, n := utf8.DecodeRune(b)
			out = append(out, KeyEvent{Press: true, Rune: r})
			b = b[n:]
			continue
		}
		ev, n, ok := decodeEscape(b)
		if n == 0 {
			d.pending = append([]byte(nil), b...)
			break
		}
		if ok {
			out = append(out, ev)
		}
		b = b[n:]
	}
	return out
}

// flush reports what is left when the input ends: a held ESC is the escape
// key, a truncated sequence is dropped.
func (d *keyDecoder) flush() []KeyEvent {
	p := d.pending
	d.pending = nil
	if len(p) == 1 {
		return []KeyEvent{{Code: KeyEscape, Press: true}}
	}
	return nil
}

// decodeEscape decodes the sequence at the start of b, which begins with
// ESC. It returns the bytes consumed, or 0 when b ends mid-sequence.
// Sequences that are not cursor keys are consumed without an event.
func decodeEscape(b []byte) (KeyEvent, int, bool) {
	if len(b) < 2 {
		return KeyEvent{}, 0, false
	}
	switch b[1] {
	case 'O':
		if len(b) < 3 {
			return KeyEvent{}, 0, false
		}
		code, ok := csiKeys[b[2]]
		return KeyEvent{Code: code, Press: true}, 3, ok
	case '[':
	default:
		return KeyEvent{Code: KeyEscape, Press: true}, 1, true
	}

	// Parameter and intermediate bytes, then one final byte.
	j := 2
	for j < len(b) && b[j] >= 0x20 && b[j] <= 0x3f {
		j++
	}
	if j == len(b) {
		if j-2 > maxCSIParams {
			return KeyEvent{}, j, false
		}
		return KeyEvent{}, 0, false
	}
	final := b[j]
	if final < 0x40 || final > 0x7e {
		return KeyEvent{}, j, false
	}
	params := string(b[2:j])
	var (
		code KeyCode
		ok   bool
	)
	switch {
	case final == '~':
		code, ok = tildeKeys[params]
	case params == "":
		code, ok = csiKeys[final]
	}
	return KeyEvent{Code: code, Press: true}, j + 1, ok
}

// decodeKeys decodes a complete chunk of input.
func decodeKeys(b []byte) []KeyEvent {
	var d keyDecoder
	return append(d.decode(b), d.flush()...)
}

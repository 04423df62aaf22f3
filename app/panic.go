package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"fbscene/gfx/surface"
)

// panicked logs a recovered frame panic with its stack, puts the message on
// screen and turns it into an error for the runner.
func (s *System) panicked(v interface{}) error {
	stack := strings.Split(string(debug.Stack()), "\n")
	s.logf("fbscene panic: %v", v)
	for _, line := range stack {
		if line != "" {
			s.logf("%s", line)
		}
	}

	s.drawPanic(fmt.Sprintf("panic: %v", v))
	return fmt.Errorf("frame panic: %v", v)
}

// drawPanic paints the message in black on white. A display that panics
// again is given up on.
func (s *System) drawPanic(msg string) {
	defer func() { recover() }()

	s.surf.Fill(surface.White)
	prev := s.hud.Color
	s.hud.Color = surface.Black
	defer func() { s.hud.Color = prev }()

	cols := s.surf.Width() / max(1, s.hud.TextWidth("0"))
	lines := []string{"fbscene panic:"}
	for len(msg) > 0 {
		chunk, rest := takeRunes(msg, max(1, cols))
		lines = append(lines, chunk)
		msg = strings.TrimLeft(rest, " ")
	}
	s.hud.Lines(lines...)
	_ = s.fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}

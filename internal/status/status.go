// Package status keeps a one-line frame timer at the top of a terminal.
package status

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Line writes the frame time at the terminal home position.
type Line struct {
	w      io.Writer
	hidden bool
}

func New(w io.Writer) *Line {
	return &Line{w: w}
}

// Frame redraws the line for a frame that took d.
func (l *Line) Frame(d time.Duration) error {
	s := ""
	if !l.hidden {
		s = ansi.HideCursor
		l.hidden = true
	}
	s += ansi.CursorHomePosition + Format(d) + ansi.EraseLineRight
	_, err := io.WriteString(l.w, s)
	return err
}

// Close shows the cursor again.
func (l *Line) Close() error {
	if !l.hidden {
		return nil
	}
	l.hidden = false
	_, err := io.WriteString(l.w, "\r\n"+ansi.ShowCursor)
	return err
}

// Format renders d as "Frame: 1.23ms".
func Format(d time.Duration) string {
	return fmt.Sprintf("Frame: %4.2fms", float64(d)/float64(time.Millisecond))
}

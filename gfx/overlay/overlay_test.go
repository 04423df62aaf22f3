package overlay

import (
	"testing"

	"fbscene/gfx/draw2d"
	"fbscene/gfx/surface"
)

const sentinel = 0xDEADBEEF

func newGuarded(t *testing.T, w, h int) (*draw2d.Engine, *surface.Surface, []uint32, int) {
	t.Helper()
	stride := w + 4
	mem := make([]uint32, stride*h)
	for i := range mem {
		mem[i] = sentinel
	}
	s, err := surface.New(w, h, stride, mem)
	if err != nil {
		t.Fatalf("surface.New: %v", err)
	}
	s.Clear()
	return draw2d.New(s), s, mem, stride
}

func TestWriteLineDrawsText(t *testing.T) {
	d, s, _, _ := newGuarded(t, 40, 16)
	d.SetColor(surface.Red)
	h := New(d, surface.Yellow)
	h.WriteLine(1, 1, "88")

	if d.Color() != surface.Red {
		t.Fatalf("engine color changed to %#08x", uint32(d.Color()))
	}
	lit := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 40; x++ {
			switch s.GetPixel(x, y) {
			case 0:
			case surface.Yellow:
				lit++
			default:
				t.Fatalf("pixel (%d,%d) = %#08x", x, y, uint32(s.GetPixel(x, y)))
			}
		}
	}
	if lit == 0 {
		t.Fatalf("no text pixels drawn")
	}
	for y := 1 + 2*h.LineHeight(); y < 16; y++ {
		for x := 0; x < 40; x++ {
			if s.GetPixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) below the line", x, y)
			}
		}
	}
}

func TestWriteLineClipped(t *testing.T) {
	d, _, mem, stride := newGuarded(t, 12, 6)
	h := New(d, surface.White)
	h.WriteLine(-3, -2, "WWWWWWWWWWWWWWWW")
	h.WriteLine(8, 4, "Frame: 12.34ms")
	for i, v := range mem {
		if i%stride >= 12 && v != sentinel {
			t.Fatalf("text escaped the viewport at row %d col %d", i/stride, i%stride)
		}
	}
}

func TestLinesStack(t *testing.T) {
	d, s, _, _ := newGuarded(t, 64, 32)
	h := New(d, surface.Green)
	h.Lines("A", "B", "C")
	rows := map[int]bool{}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if s.GetPixel(x, y) != 0 {
				rows[y/h.LineHeight()] = true
			}
		}
	}
	if len(rows) < 3 {
		t.Fatalf("text touched %d line bands, want 3", len(rows))
	}
	if w := h.TextWidth("ABC"); w <= h.TextWidth("A") {
		t.Fatalf("TextWidth(ABC) = %d", w)
	}
}

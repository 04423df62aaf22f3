package surface

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	cases := []struct {
		name      string
		w, h, str int
		mem       int
		want      error
	}{
		{"zero width", 0, 10, 0, 100, ErrInvalidSize},
		{"negative height", 10, -1, 10, 100, ErrInvalidSize},
		{"stride below width", 10, 10, 9, 100, ErrInvalidSize},
		{"short buffer", 10, 10, 10, 99, ErrShortBuffer},
		{"short padded buffer", 10, 10, 16, 16*9 + 9, ErrShortBuffer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h, tc.str, make([]uint32, tc.mem))
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewAliasesMemory(t *testing.T) {
	mem := make([]uint32, 4*3)
	s, err := New(4, 3, 4, mem)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetPixel(2, 1, Red)
	if mem[1*4+2] != uint32(Red) {
		t.Fatalf("write did not reach backing memory: %#x", mem[6])
	}
	mem[0] = uint32(Cyan)
	if got := s.GetPixel(0, 0); got != Cyan {
		t.Fatalf("GetPixel: got %#x", uint32(got))
	}
}

func TestStridedSurface(t *testing.T) {
	mem := make([]uint32, 8*2)
	for i := range mem {
		mem[i] = 0xDEADBEEF
	}
	s, err := New(5, 2, 8, mem)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetPixel(4, 1, Green)
	if mem[8+4] != uint32(Green) {
		t.Fatalf("strided write landed in the wrong cell")
	}
	s.Clear()
	for y := 0; y < 2; y++ {
		for x := 0; x < 8; x++ {
			v := mem[y*8+x]
			if x < 5 && v != 0 {
				t.Fatalf("visible cell (%d,%d) not cleared: %#x", x, y, v)
			}
			if x >= 5 && v != 0xDEADBEEF {
				t.Fatalf("padding cell (%d,%d) was touched", x, y)
			}
		}
	}
}

func TestBlendPixelExtremes(t *testing.T) {
	s, err := Alloc(2, 1)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	bg := RGB(10, 200, 30)
	fg := RGB(250, 5, 128)

	s.SetPixel(0, 0, bg)
	s.BlendPixel(0, 0, fg)
	if got := s.GetPixel(0, 0); got != fg {
		t.Fatalf("alpha=255: got %#x, want %#x", uint32(got), uint32(fg))
	}

	s.SetPixel(1, 0, bg)
	s.BlendPixel(1, 0, fg.WithAlpha(0))
	if got := s.GetPixel(1, 0); got != bg {
		t.Fatalf("alpha=0: got %#x, want %#x", uint32(got), uint32(bg))
	}
}

func TestBlendFormula(t *testing.T) {
	bg := ARGB(0, 100, 0, 255)
	fg := ARGB(128, 255, 255, 0)
	got := Blend(bg, fg)
	// alpha = 128/255
	want := ARGB(255, 178, 128, 127)
	if got != want {
		t.Fatalf("Blend: got %#x, want %#x", uint32(got), uint32(want))
	}
	if got.A() != 0xFF {
		t.Fatalf("blend result must be opaque")
	}
}

func TestColorChannels(t *testing.T) {
	c := ARGB(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("ARGB packing: %#x", uint32(c))
	}
	if c.A() != 0x12 || c.R() != 0x34 || c.G() != 0x56 || c.B() != 0x78 {
		t.Fatalf("channel extraction mismatch")
	}
	if got := White.ScaleAlpha(0.5); got != 0x80FFFFFF {
		t.Fatalf("ScaleAlpha(0.5): %#x", uint32(got))
	}
	if got := White.ScaleAlpha(-1); got != 0x00FFFFFF {
		t.Fatalf("ScaleAlpha(-1): %#x", uint32(got))
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	if got != ARGB(4, 1, 2, 3) {
		t.Fatalf("FromColor: %#x", uint32(got))
	}
	if got := FromColor(Magenta); got != Magenta {
		t.Fatalf("FromColor(Color): %#x", uint32(got))
	}
}

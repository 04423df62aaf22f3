package scene

import (
	"fbscene/gfx/surface"

	"github.com/lucasb-eyer/go-colorful"
)

// Rainbow blends a left-to-right hue sweep over the top rows of s. The
// first solid rows are opaque; the next fade rows fade out linearly.
func Rainbow(s *surface.Surface, solid, fade int) {
	w := s.Width()
	if w <= 0 {
		return
	}
	hues := make([]surface.Color, w)
	for x := range hues {
		r, g, b := colorful.Hsv(360*float64(x)/float64(w), 1, 1).RGB255()
		hues[x] = surface.RGB(r, g, b)
	}

	rows := min(solid+fade, s.Height())
	for y := 0; y < rows; y++ {
		alpha := 1.0
		if y >= solid {
			alpha = 1 - float64(y-solid)/float64(fade)
		}
		for x, c := range hues {
			s.BlendPixel(x, y, c.ScaleAlpha(alpha))
		}
	}
}

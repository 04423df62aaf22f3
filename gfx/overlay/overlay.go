// Package overlay writes text over a rendered frame with a small bitmap font.
package overlay

import (
	"image/color"

	"fbscene/gfx/draw2d"
	"fbscene/gfx/surface"
	"fbscene/gfx/vecmath"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// HUD draws lines of text in the top-left corner of a draw2d Engine.
type HUD struct {
	Color surface.Color

	d          *draw2d.Engine
	disp       *engineDisplay
	font       tinyfont.Fonter
	lineHeight int16
	ascent     int16
	margin     int16
}

func New(d *draw2d.Engine, c surface.Color) *HUD {
	font := &tinyfont.TomThumb
	return &HUD{
		Color:      c,
		d:          d,
		disp:       &engineDisplay{d: d},
		font:       font,
		lineHeight: int16(font.GetYAdvance()),
		ascent:     int16(font.GetYAdvance()) - 1,
		margin:     1,
	}
}

// LineHeight is the vertical distance between two lines of text.
func (h *HUD) LineHeight() int { return int(h.lineHeight) }

// TextWidth is the width in pixels of s.
func (h *HUD) TextWidth(s string) int {
	_, w := tinyfont.LineWidth(h.font, s)
	return int(w)
}

// WriteLine draws s with its top-left corner at (x, y). The engine's
// current color is left as it was.
func (h *HUD) WriteLine(x, y int, s string) {
	prev := h.d.Color()
	defer h.d.SetColor(prev)
	tinyfont.WriteLine(h.disp, h.font, int16(x), int16(y)+h.ascent, s, rgba(h.Color))
}

// Lines draws one line per string, top to bottom from the corner.
func (h *HUD) Lines(lines ...string) {
	y := int(h.margin)
	for _, s := range lines {
		h.WriteLine(int(h.margin), y, s)
		y += int(h.lineHeight)
	}
}

func rgba(c surface.Color) color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// engineDisplay lets tinyfont draw through the 2D engine, so every glyph
// pixel is clipped to the viewport.
type engineDisplay struct {
	d *draw2d.Engine
}

var _ drivers.Displayer = (*engineDisplay)(nil)

func (e *engineDisplay) Size() (x, y int16) {
	w, h := e.d.Resolution()
	return int16(w), int16(h)
}

func (e *engineDisplay) SetPixel(x, y int16, c color.RGBA) {
	e.d.SetColor(surface.ARGB(c.A, c.R, c.G, c.B))
	e.d.DrawPoint(vecmath.V2(float64(x), float64(y)))
}

func (e *engineDisplay) Display() error { return nil }

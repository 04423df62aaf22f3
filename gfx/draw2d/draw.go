// Package draw2d rasterizes points and lines onto a surface.
//
// Every pixel an Engine writes has been clipped against the surface first:
// lines through Cohen-Sutherland, points through an outcode test. Input that
// falls outside the viewport is silently dropped.
package draw2d

import (
	"math"

	"fbscene/gfx/surface"
	"fbscene/gfx/vecmath"
)

// Engine draws with a current color into one surface. Engines are not safe
// for concurrent use; separate engines over separate surfaces are
// independent.
type Engine struct {
	surf  *surface.Surface
	color surface.Color
	xmax  float64
	ymax  float64
}

func New(s *surface.Surface) *Engine {
	return &Engine{
		surf:  s,
		color: surface.White,
		xmax:  float64(s.Width() - 1),
		ymax:  float64(s.Height() - 1),
	}
}

func (e *Engine) Surface() *surface.Surface { return e.surf }

// Resolution returns the surface size in pixels.
func (e *Engine) Resolution() (w, h int) { return e.surf.Width(), e.surf.Height() }

// SetColor sets the color used by every following draw call.
func (e *Engine) SetColor(c surface.Color) { e.color = c }

func (e *Engine) Color() surface.Color { return e.color }

// Clear zeroes the surface.
func (e *Engine) Clear() { e.surf.Clear() }

// DrawPoint writes the current color at p. Points outside the viewport are
// ignored.
func (e *Engine) DrawPoint(p vecmath.Vec2) {
	if e.Outcode(p) != Inside {
		return
	}
	e.surf.SetPixel(int(p.X), int(p.Y), e.color)
}

// DrawPointAlpha composites the current color at p with its alpha channel
// scaled by alpha.
func (e *Engine) DrawPointAlpha(p vecmath.Vec2, alpha float64) {
	if e.Outcode(p) != Inside {
		return
	}
	e.surf.BlendPixel(int(p.X), int(p.Y), e.color.ScaleAlpha(alpha))
}

// DrawLine draws a solid line from p0 to p1.
func (e *Engine) DrawLine(p0, p1 vecmath.Vec2) {
	q0, q1, ok := e.ClipLine(p0, p1)
	if !ok {
		return
	}
	e.rasterizeSolid(q0, q1)
}

// DrawLineAA draws an anti-aliased line from p0 to p1.
func (e *Engine) DrawLineAA(p0, p1 vecmath.Vec2) {
	q0, q1, ok := e.ClipLine(p0, p1)
	if !ok {
		return
	}
	rasterizeAA(q0, q1, e.plotCoverage)
}

func (e *Engine) plotCoverage(x, y int, coverage float64) {
	e.DrawPointAlpha(vecmath.V2(float64(x), float64(y)), math.Sqrt(coverage))
}

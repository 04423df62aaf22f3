package draw2d

import (
	"math"

	"fbscene/gfx/vecmath"
)

// Outcode classifies a point against the viewport [0,w-1]×[0,h-1].
type Outcode uint8

const (
	Inside Outcode = 0
	Left   Outcode = 1
	Right  Outcode = 2
	Bottom Outcode = 4
	Top    Outcode = 8
)

// Outcode returns the clip bits for p. Bottom is y < 0 and Top is y > h-1.
func (e *Engine) Outcode(p vecmath.Vec2) Outcode {
	code := Inside
	if p.X < 0 {
		code |= Left
	} else if p.X > e.xmax {
		code |= Right
	}
	if p.Y < 0 {
		code |= Bottom
	} else if p.Y > e.ymax {
		code |= Top
	}
	// NaN fails every comparison above.
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		code |= Left | Bottom
	}
	return code
}

// ClipLine clips the segment p0-p1 to the viewport with Cohen-Sutherland.
// ok is false when no part of the segment is visible.
func (e *Engine) ClipLine(p0, p1 vecmath.Vec2) (q0, q1 vecmath.Vec2, ok bool) {
	if !finite(p0) || !finite(p1) {
		return p0, p1, false
	}
	code0 := e.Outcode(p0)
	code1 := e.Outcode(p1)

	for {
		if code0|code1 == Inside {
			return p0, p1, true
		}
		if code0&code1 != 0 {
			return p0, p1, false
		}

		out := code0
		if out == Inside {
			out = code1
		}

		dx := p1.X - p0.X
		dy := p1.Y - p0.Y
		var p vecmath.Vec2
		switch {
		case out&Top != 0:
			p = vecmath.V2(p0.X+dx*(e.ymax-p0.Y)/dy, e.ymax)
		case out&Bottom != 0:
			p = vecmath.V2(p0.X+dx*(0-p0.Y)/dy, 0)
		case out&Right != 0:
			p = vecmath.V2(e.xmax, p0.Y+dy*(e.xmax-p0.X)/dx)
		case out&Left != 0:
			p = vecmath.V2(0, p0.Y+dy*(0-p0.X)/dx)
		}

		if out == code0 {
			p0 = p
			code0 = e.Outcode(p0)
		} else {
			p1 = p
			code1 = e.Outcode(p1)
		}
	}
}

func finite(p vecmath.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

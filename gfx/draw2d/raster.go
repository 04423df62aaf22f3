package draw2d

import (
	"math"

	"fbscene/gfx/vecmath"
)

// rasterizeSolid plots a clipped segment with Bresenham's algorithm, stepping
// one pixel per iteration along the major axis and carrying an integer error
// on the minor one. A segment that rounds to a single pixel draws nothing.
func (e *Engine) rasterizeSolid(p0, p1 vecmath.Vec2) {
	xsign, ysign := 1, 1
	if p1.X <= p0.X {
		xsign = -1
	}
	if p1.Y <= p0.Y {
		ysign = -1
	}

	x0, y0 := int(math.Round(p0.X)), int(math.Round(p0.Y))
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	dx := (x1 - x0) * xsign
	dy := (y1 - y0) * ysign

	x, y := x0, y0
	errAcc := 0
	if dx > dy {
		for i := 0; i <= dx; i++ {
			e.surf.SetPixel(x, y, e.color)
			x += xsign
			errAcc += dy
			if errAcc >= dx {
				y += ysign
				errAcc -= dx
			}
		}
		return
	}

	if dy == 0 {
		return
	}
	for i := 0; i <= dy; i++ {
		e.surf.SetPixel(x, y, e.color)
		y += ysign
		errAcc += dx
		if errAcc >= dy {
			x += xsign
			errAcc -= dy
		}
	}
}

// rasterizeAA walks a clipped segment with Xiaolin Wu's algorithm and reports
// every pixel it touches with its fractional coverage. The two pixels
// straddling the line in each column (or row, for steep lines) get coverages
// that sum to one; the end columns are further weighted by how much of the
// pixel the segment spans.
func rasterizeAA(p0, p1 vecmath.Vec2, plot func(x, y int, coverage float64)) {
	steep := math.Abs(p1.Y-p0.Y) > math.Abs(p1.X-p0.X)
	if steep {
		p0.X, p0.Y = p0.Y, p0.X
		p1.X, p1.Y = p1.Y, p1.X
	}
	if p0.X > p1.X {
		p0, p1 = p1, p0
	}

	put := func(major, minor int, c float64) {
		if c <= 0 {
			return
		}
		if steep {
			plot(minor, major, c)
		} else {
			plot(major, minor, c)
		}
	}

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	gradient := 1.0
	if dx != 0 {
		gradient = dy / dx
	}

	// First endpoint.
	xend := math.Round(p0.X)
	yend := p0.Y + gradient*(xend-p0.X)
	xgap := 1 - fpart(p0.X+0.5)
	xpx1 := int(xend)
	ypx1 := int(math.Floor(yend))
	put(xpx1, ypx1, (1-fpart(yend))*xgap)
	put(xpx1, ypx1+1, fpart(yend)*xgap)
	intery := yend + gradient

	// Second endpoint.
	xend = math.Round(p1.X)
	yend = p1.Y + gradient*(xend-p1.X)
	xgap = fpart(p1.X + 0.5)
	xpx2 := int(xend)
	ypx2 := int(math.Floor(yend))
	put(xpx2, ypx2, (1-fpart(yend))*xgap)
	put(xpx2, ypx2+1, fpart(yend)*xgap)

	for x := xpx1 + 1; x < xpx2; x++ {
		iy := math.Floor(intery)
		f := intery - iy
		put(x, int(iy), 1-f)
		put(x, int(iy)+1, f)
		intery += gradient
	}
}

func fpart(v float64) float64 { return v - math.Floor(v) }

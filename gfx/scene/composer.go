package scene

import (
	"time"

	"fbscene/gfx/draw3d"
	"fbscene/gfx/surface"
	"fbscene/gfx/vecmath"
)

// Palette holds the color of each scene layer.
type Palette struct {
	Horizon surface.Color
	Grid    surface.Color
	Points  surface.Color
	Cube    surface.Color
}

// DefaultPalette draws the horizon and grid in grey and everything else in
// white.
func DefaultPalette() Palette {
	return Palette{
		Horizon: surface.Grey,
		Grid:    surface.Grey,
		Points:  surface.White,
		Cube:    surface.White,
	}
}

const (
	// DefaultGridSize is the reach of the ground-point field around the
	// camera, in world units.
	DefaultGridSize = 160
	pointSpacing    = 2
	pointLineMask   = 15

	rainbowSolid = 20
	rainbowFade  = 100
)

// Stats describes one rendered frame.
type Stats struct {
	Duration time.Duration
	Lines    int
	Points   int
}

// Composer renders the reference scene through a draw3d Engine.
type Composer struct {
	Palette  Palette
	GridSize int

	// Rainbow draws a fading hue sweep across the sky before the scene.
	Rainbow bool

	e3    *draw3d.Engine
	lines []Segment
	cube  []Segment
	now   func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

func WithPalette(p Palette) Option { return func(c *Composer) { c.Palette = p } }

// WithGridSize sets the reach of the ground-point field; non-positive values
// keep the default.
func WithGridSize(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.GridSize = n
		}
	}
}

func WithRainbow(on bool) Option { return func(c *Composer) { c.Rainbow = on } }

func withClock(now func() time.Time) Option { return func(c *Composer) { c.now = now } }

func NewComposer(e3 *draw3d.Engine, opts ...Option) *Composer {
	c := &Composer{
		Palette:  DefaultPalette(),
		GridSize: DefaultGridSize,
		e3:       e3,
		lines:    ReferenceGrid(50, 10, 0),
		cube:     Cube(vecmath.V3(5.5, 0, 5.5), 1),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render draws one frame as seen from cam.
func (c *Composer) Render(cam draw3d.Camera) (Stats, error) {
	start := c.now()
	if err := c.e3.SetCamera(cam); err != nil {
		return Stats{}, err
	}
	d := c.e3.Draw2D()
	w, _ := d.Resolution()
	var st Stats

	d.Clear()
	if c.Rainbow {
		Rainbow(d.Surface(), rainbowSolid, rainbowFade)
	}

	d.SetColor(c.Palette.Horizon)
	row := c.e3.HorizonRow()
	d.DrawLine(vecmath.V2(0, row), vecmath.V2(float64(w), row))

	d.SetColor(c.Palette.Grid)
	for _, s := range c.lines {
		c.e3.ProjectLine(s.A, s.B)
	}
	st.Lines += len(c.lines)

	d.SetColor(c.Palette.Points)
	st.Points = c.groundPoints(cam.Position)

	d.SetColor(c.Palette.Cube)
	for _, s := range c.cube {
		c.e3.ProjectLine(s.A, s.B)
	}
	st.Lines += len(c.cube)

	st.Duration = c.now().Sub(start)
	return st, nil
}

// groundPoints draws the point field on y = 0 around the camera footprint.
// Points sit every two units along lines where x or z is a multiple of 16
// and fade out quadratically with their distance from the footprint.
func (c *Composer) groundPoints(pos vecmath.Vec3) int {
	size := c.GridSize
	sx := int(pos.X) &^ 1
	sz := int(pos.Z) &^ 1
	n := 0
	for x := sx - size; x <= sx+size; x += pointSpacing {
		for z := sz - size; z <= sz+size; z += pointSpacing {
			if x&pointLineMask != 0 && z&pointLineMask != 0 {
				continue
			}
			alpha := 1 - float64(FastDist(sx-x, sz-z))/float64(size)
			if alpha <= 0 {
				continue
			}
			c.e3.ProjectPointAlpha(vecmath.V3(float64(x), 0, float64(z)), alpha*alpha)
			n++
		}
	}
	return n
}

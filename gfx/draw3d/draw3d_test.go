package draw3d

import (
	"errors"
	"math"
	"testing"

	"fbscene/gfx/draw2d"
	"fbscene/gfx/surface"
	"fbscene/gfx/vecmath"
)

func newEngine(t *testing.T, w, h int, cam Camera) *Engine {
	t.Helper()
	s, err := surface.Alloc(w, h)
	if err != nil {
		t.Fatalf("surface.Alloc: %v", err)
	}
	e, err := New(draw2d.New(s), cam)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func lit(s *surface.Surface) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetPixel(x, y) != 0 {
				n++
			}
		}
	}
	return n
}

func TestProjectAtCameraNotVisible(t *testing.T) {
	cam := DefaultCamera()
	e := newEngine(t, 320, 240, cam)
	if _, ok := e.Project(cam.Position); ok {
		t.Fatal("point at camera position reported visible")
	}
	if _, ok := e.Project(cam.Position.Add(vecmath.V3(0, 0, NearPlane))); ok {
		t.Fatal("point on the near plane reported visible")
	}
	if _, ok := e.Project(cam.Position.Add(vecmath.V3(3, 1, -1))); ok {
		t.Fatal("point behind the camera reported visible")
	}
}

func TestProjectCenterColumn(t *testing.T) {
	e := newEngine(t, 320, 240, DefaultCamera())
	for _, p := range []vecmath.Vec3{
		vecmath.V3(0, 0, 0),
		vecmath.V3(0, 7, 3),
		vecmath.V3(0, -4, 100),
	} {
		s, ok := e.Project(p)
		if !ok {
			t.Fatalf("%v not visible", p)
		}
		if s.X != 160 {
			t.Fatalf("%v projected to x=%v, want 160", p, s.X)
		}
	}
}

func TestHorizonScenario(t *testing.T) {
	e := newEngine(t, 320, 240, DefaultCamera())
	if got := e.HorizonRow(); got != 120 {
		t.Fatalf("horizon row %v, want 120", got)
	}
	s, ok := e.Project(vecmath.V3(25, 2, 1e7))
	if !ok {
		t.Fatal("far level point not visible")
	}
	if math.Abs(s.Y-120) > 1e-3 {
		t.Fatalf("far level point at row %v, want 120", s.Y)
	}
	ground, _ := e.Project(vecmath.V3(0, 0, 10))
	if ground.Y <= 120 {
		t.Fatalf("ground point above the horizon: %v", ground.Y)
	}
}

func TestHorizonFollowsPitch(t *testing.T) {
	cam := DefaultCamera()
	cam.Rotation = vecmath.V3(0.3, 0.8, 0)
	cam.FOV = 1.5
	e := newEngine(t, 320, 240, cam)

	far := cam.Position.Add(vecmath.V3(math.Sin(0.8), 0, math.Cos(0.8)).Scale(1e7))
	s, ok := e.Project(far)
	if !ok {
		t.Fatal("far point not visible")
	}
	want := (0.5 + math.Tan(0.3)*1.5) * 240
	if math.Abs(s.Y-want) > 1e-3 || math.Abs(e.HorizonRow()-want) > 1e-9 {
		t.Fatalf("row %v, horizon %v, want %v", s.Y, e.HorizonRow(), want)
	}
	if math.Abs(s.X-160) > 1e-3 {
		t.Fatalf("forward point off center: %v", s.X)
	}
}

func TestDistortRadiusMonotonic(t *testing.T) {
	for _, k := range []float64{-2, -0.5, 0, 0.5, 2} {
		prev := -1.0
		for i := 0; i <= 400; i++ {
			r := float64(i) * 0.01
			got := distortRadius(r, k)
			if got <= prev {
				t.Fatalf("k=%v not increasing at r=%v", k, r)
			}
			if k == 0 && got != r {
				t.Fatalf("k=0 is not identity at r=%v", r)
			}
			prev = got
		}
	}
	if distortRadius(1, 1) <= 1 || distortRadius(1, -1) >= 1 {
		t.Fatal("sign of k does not select pincushion/barrel")
	}
}

func TestDistortKeepsCenter(t *testing.T) {
	cam := DefaultCamera()
	cam.Distort = 0.7
	e := newEngine(t, 320, 240, cam)
	s, ok := e.Project(vecmath.V3(0, 2, 5))
	if !ok || s != vecmath.V2(160, 120) {
		t.Fatalf("optical center moved: %v", s)
	}
}

func TestDistortKeepsHorizon(t *testing.T) {
	for _, pitch := range []float64{-0.3, 0.3} {
		for _, k := range []float64{-1, 1} {
			cam := Camera{Rotation: vecmath.V3(pitch, 0, 0), FOV: 1, Distort: k}
			e := newEngine(t, 320, 240, cam)
			s, ok := e.Project(vecmath.V3(0, 0, 1e7))
			if !ok {
				t.Fatalf("pitch=%v k=%v: far point not visible", pitch, k)
			}
			if math.Abs(s.Y-e.HorizonRow()) > 1e-6 {
				t.Fatalf("pitch=%v k=%v: row %v, horizon %v", pitch, k, s.Y, e.HorizonRow())
			}
			if math.Abs(s.X-160) > 1e-6 {
				t.Fatalf("pitch=%v k=%v: column %v", pitch, k, s.X)
			}
		}
	}
}

func TestProjectLineNearClip(t *testing.T) {
	e := newEngine(t, 320, 240, DefaultCamera())
	// Runs from behind the camera to well in front of it.
	e.ProjectLine(vecmath.V3(1, 0, -20), vecmath.V3(1, 0, 20))
	if lit(e.Draw2D().Surface()) == 0 {
		t.Fatal("partly visible line drew nothing")
	}
}

func TestProjectLineHidden(t *testing.T) {
	e := newEngine(t, 320, 240, DefaultCamera())
	e.ProjectLine(vecmath.V3(-5, 0, -30), vecmath.V3(5, 0, -11))
	e.ProjectPoint(vecmath.V3(0, 0, -12))
	e.ProjectPointAlpha(vecmath.V3(0, 0, -12), 1)
	if n := lit(e.Draw2D().Surface()); n != 0 {
		t.Fatalf("hidden geometry drew %d pixels", n)
	}
}

func TestProjectLineAAMode(t *testing.T) {
	e := newEngine(t, 64, 48, DefaultCamera())
	e.Mode = LineAA
	e.ProjectLine(vecmath.V3(-1, 0, 0), vecmath.V3(1, 0, 0))
	s := e.Draw2D().Surface()
	partial := false
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetPixel(x, y)
			if c != 0 && c.R() != 0xFF {
				partial = true
			}
		}
	}
	if !partial {
		t.Fatal("AA mode produced no partially covered pixels")
	}
}

func TestProjectPointRoundTrip(t *testing.T) {
	e := newEngine(t, 320, 240, DefaultCamera())
	e.Draw2D().SetColor(surface.Yellow)
	p := vecmath.V3(0, 2, 0)
	e.ProjectPoint(p)
	s, _ := e.Project(p)
	if got := e.Draw2D().Surface().GetPixel(int(s.X), int(s.Y)); got != surface.Yellow {
		t.Fatalf("got %#x", uint32(got))
	}
}

func TestInvalidCamera(t *testing.T) {
	s, _ := surface.Alloc(4, 4)
	d := draw2d.New(s)

	bad := []Camera{
		{FOV: 0},
		{FOV: -1},
		{FOV: math.Inf(1)},
		{FOV: 1, Distort: math.NaN()},
		{FOV: 1, Position: vecmath.V3(math.NaN(), 0, 0)},
		{FOV: 1, Rotation: vecmath.V3(0, math.Inf(-1), 0)},
	}
	for _, cam := range bad {
		if _, err := New(d, cam); !errors.Is(err, ErrInvalidCamera) {
			t.Fatalf("camera %+v: got %v", cam, err)
		}
	}

	e, err := New(d, DefaultCamera())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetCamera(Camera{}); !errors.Is(err, ErrInvalidCamera) {
		t.Fatalf("SetCamera: got %v", err)
	}
	if e.Camera() != DefaultCamera() {
		t.Fatal("rejected camera replaced the previous pose")
	}
}

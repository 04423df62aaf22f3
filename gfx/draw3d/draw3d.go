// Package draw3d projects a 3D scene through a Camera onto a draw2d Engine.
//
// The projection is a plain pinhole model: translate by the camera position,
// rotate by yaw then pitch, divide by depth and scale by FOV·height. Points at
// or behind the near plane are not visible. Lines with one hidden endpoint are
// cut at the near plane; lines with both endpoints hidden are skipped, even if
// their middle would be in view.
package draw3d

import (
	"math"

	"fbscene/gfx/draw2d"
	"fbscene/gfx/vecmath"
)

// NearPlane is the smallest camera-space depth that still projects.
const NearPlane = 0.05

// LineMode picks the 2D rasterizer used by ProjectLine.
type LineMode uint8

const (
	LineSolid LineMode = iota
	LineAA
)

// Engine draws 3D primitives as seen from its camera.
type Engine struct {
	Mode LineMode

	d2  *draw2d.Engine
	cam Camera
}

// New validates cam and returns an engine that draws through d.
func New(d *draw2d.Engine, cam Camera) (*Engine, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	return &Engine{d2: d, cam: cam}, nil
}

func (e *Engine) Draw2D() *draw2d.Engine { return e.d2 }

func (e *Engine) Camera() Camera { return e.cam }

// SetCamera replaces the camera pose; an invalid pose is rejected and the
// previous one kept.
func (e *Engine) SetCamera(cam Camera) error {
	if err := cam.Validate(); err != nil {
		return err
	}
	e.cam = cam
	return nil
}

// HorizonRow is the screen row of the horizon. Distortion is centred on the
// horizon, so the row does not depend on Camera.Distort.
func (e *Engine) HorizonRow() float64 {
	_, h := e.d2.Resolution()
	return (0.5 + math.Tan(e.cam.Rotation.X)*e.cam.FOV) * float64(h)
}

// Project returns the screen position of p, or false when p is at or behind
// the near plane.
func (e *Engine) Project(p vecmath.Vec3) (vecmath.Vec2, bool) {
	v := e.cam.toView(p)
	if v.Z <= NearPlane {
		return vecmath.Vec2{}, false
	}
	return e.viewToScreen(v), true
}

func (e *Engine) viewToScreen(v vecmath.Vec3) vecmath.Vec2 {
	w, h := e.d2.Resolution()
	fh := float64(h)

	// Normalised coordinates in units of screen height, Y up.
	u := v.X / v.Z * e.cam.FOV
	t := v.Y / v.Z * e.cam.FOV

	// Pitch is already applied in view space, so a level point at infinity
	// has t = t0 and lands on HorizonRow. The distortion is centred there
	// to keep it that way.
	if k := e.cam.Distort; k != 0 {
		t0 := -math.Tan(e.cam.Rotation.X) * e.cam.FOV
		dt := t - t0
		if r := math.Hypot(u, dt); r > 0 {
			s := distortRadius(r, k) / r
			u *= s
			t = t0 + dt*s
		}
	}

	return vecmath.V2(
		float64(w)/2+u*fh,
		(0.5-t)*fh,
	)
}

// ProjectLine draws the segment a-b.
func (e *Engine) ProjectLine(a, b vecmath.Vec3) {
	va := e.cam.toView(a)
	vb := e.cam.toView(b)
	visA := va.Z > NearPlane
	visB := vb.Z > NearPlane

	switch {
	case visA && visB:
	case visA:
		vb = clipNear(va, vb)
	case visB:
		va = clipNear(vb, va)
	default:
		return
	}

	p0 := e.viewToScreen(va)
	p1 := e.viewToScreen(vb)
	if e.Mode == LineAA {
		e.d2.DrawLineAA(p0, p1)
		return
	}
	e.d2.DrawLine(p0, p1)
}

// clipNear moves hidden along the segment toward visible until it reaches
// the near plane.
func clipNear(visible, hidden vecmath.Vec3) vecmath.Vec3 {
	t := (NearPlane - hidden.Z) / (visible.Z - hidden.Z)
	p := hidden.Lerp(visible, t)
	p.Z = NearPlane
	return p
}

// ProjectPoint draws p with the current color when it is visible.
func (e *Engine) ProjectPoint(p vecmath.Vec3) {
	if s, ok := e.Project(p); ok {
		e.d2.DrawPoint(s)
	}
}

// ProjectPointAlpha composites p with the current color scaled by alpha.
func (e *Engine) ProjectPointAlpha(p vecmath.Vec3, alpha float64) {
	if s, ok := e.Project(p); ok {
		e.d2.DrawPointAlpha(s, alpha)
	}
}

package draw3d

import (
	"errors"
	"fmt"
	"math"

	"fbscene/gfx/vecmath"
)

var ErrInvalidCamera = errors.New("draw3d: invalid camera")

// Camera is a viewing pose. Rotation.X is pitch (positive looks up),
// Rotation.Y is yaw; roll is ignored.
type Camera struct {
	Position vecmath.Vec3
	Rotation vecmath.Vec3

	// FOV scales the perspective divide; larger values zoom in.
	FOV float64

	// Distort bends the image radially: positive values pinch toward
	// the edges (pincushion), negative values bulge (barrel).
	Distort float64
}

// DefaultCamera is the start pose: two units up, ten units back, looking
// along +Z.
func DefaultCamera() Camera {
	return Camera{
		Position: vecmath.V3(0, 2, -10),
		FOV:      1,
	}
}

// Validate reports non-finite fields or a non-positive FOV.
func (c Camera) Validate() error {
	switch {
	case !c.Position.Finite():
		return fmt.Errorf("%w: position %v", ErrInvalidCamera, c.Position)
	case !c.Rotation.Finite():
		return fmt.Errorf("%w: rotation %v", ErrInvalidCamera, c.Rotation)
	case math.IsNaN(c.FOV) || math.IsInf(c.FOV, 0) || c.FOV <= 0:
		return fmt.Errorf("%w: fov %v", ErrInvalidCamera, c.FOV)
	case math.IsNaN(c.Distort) || math.IsInf(c.Distort, 0):
		return fmt.Errorf("%w: distort %v", ErrInvalidCamera, c.Distort)
	}
	return nil
}

// toView moves p into camera space: X right, Y up, Z forward.
func (c Camera) toView(p vecmath.Vec3) vecmath.Vec3 {
	return p.Sub(c.Position).RotateY(c.Rotation.Y).RotateX(c.Rotation.X)
}

// distortRadius remaps a normalised screen radius. The remap is strictly
// increasing in r for every k and is the identity for k == 0.
func distortRadius(r, k float64) float64 {
	switch {
	case k > 0:
		return r * math.Sqrt(1+k*r*r)
	case k < 0:
		return r / math.Sqrt(1-k*r*r)
	}
	return r
}

package draw3d

import (
	"math"

	"fbscene/gfx/vecmath"
)

// FlyController turns single key presses into camera pose changes.
//
// Bindings follow the numeric keypad: 4/6 turn, 8/2 (or 5) look up/down,
// +/- zoom, * and / change distortion, 1 resets the view and 7 also resets
// the position. w/a/s/d move on the ground plane relative to the current yaw
// and r/f move up and down.
//
// It does not depend on any input system.
type FlyController struct {
	// Step is the distance moved per key press. Zero means 0.8.
	Step float64
	// Turn is the rotation per key press at FOV 1. Zero means 0.1 rad.
	Turn float64
	// Home is the position restored by the '7' key.
	Home vecmath.Vec3
}

// NewFlyController returns a controller with the default step sizes and a
// home position two units above the origin.
func NewFlyController() *FlyController {
	return &FlyController{Step: 0.8, Turn: 0.1, Home: vecmath.V3(0, 2, 0)}
}

// Apply updates cam for key and reports whether the key is bound.
func (c *FlyController) Apply(cam *Camera, key rune) bool {
	if cam == nil {
		return false
	}
	step := c.Step
	if step == 0 {
		step = 0.8
	}
	turn := c.Turn
	if turn == 0 {
		turn = 0.1
	}
	fov := cam.FOV
	if fov <= 0 {
		fov = 1
	}
	yaw := cam.Rotation.Y
	sin, cos := math.Sincos(yaw)

	switch key {
	case '7':
		cam.Position = c.Home
		resetView(cam)
	case '1':
		resetView(cam)
	case '4':
		cam.Rotation.Y -= turn / fov
	case '6':
		cam.Rotation.Y += turn / fov
	case '8':
		cam.Rotation.X = math.Min(cam.Rotation.X+turn/fov, math.Pi/2)
	case '2', '5':
		cam.Rotation.X = math.Max(cam.Rotation.X-turn/fov, -math.Pi/2)
	case '+':
		cam.FOV = fov * 1.25
	case '-':
		cam.FOV = fov * 0.8
	case 'w':
		cam.Position.Z += step * cos
		cam.Position.X += step * sin
	case 's':
		cam.Position.Z -= step * cos
		cam.Position.X -= step * sin
	case 'a':
		cam.Position.Z += step * sin
		cam.Position.X -= step * cos
	case 'd':
		cam.Position.Z -= step * sin
		cam.Position.X += step * cos
	case 'r':
		cam.Position.Y += step
	case 'f':
		cam.Position.Y -= step
	case '*':
		cam.Distort += 0.1
	case '/':
		cam.Distort -= 0.1
	default:
		return false
	}
	return true
}

func resetView(cam *Camera) {
	cam.Rotation = vecmath.Vec3{}
	cam.FOV = 1
	cam.Distort = 0
}

package posefeed

import "fbscene/gfx/vecmath"

// Event is the message sent to and received from clients.
type Event struct {
	Name string      `json:"name"`
	Data interface{} `json:"data"`
}

// Pose is a camera pose sent by a client. A non-positive FOV keeps the
// current one.
type Pose struct {
	Position vecmath.Vec3 `mapstructure:"position"`
	Rotation vecmath.Vec3 `mapstructure:"rotation"`
	FOV      float64      `mapstructure:"fov"`
	Distort  float64      `mapstructure:"distort"`
}

// Update is one camera change decoded from a client message. Exactly one of
// Pose and Key is set.
type Update struct {
	Pose *Pose
	Key  rune
}

// FrameStats is broadcast to every client after each frame.
type FrameStats struct {
	MS     float64 `json:"ms"`
	Lines  int     `json:"lines"`
	Points int     `json:"points"`
}

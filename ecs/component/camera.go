package component

import "github.com/jakecoffman/cp"

// Camera is one framing of an arena. Only Active cameras render and receive
// shake.
type Camera struct {
	Name   string
	Active bool
	Center cp.Vector
	Zoom   float64
}

// CameraShake is the running shake state of a camera.
type CameraShake struct {
	Remaining float64
	Duration  float64
	Intensity float64
	Smooth    bool
	Offset    cp.Vector
}

var CameraComponent = NewComponent[Camera]()
var CameraShakeComponent = NewComponent[CameraShake]()

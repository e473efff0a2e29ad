package component

import "github.com/jakecoffman/cp"

// Velocity is integrated into Transform by MotionSystem, in world units per
// second.
type Velocity struct {
	Linear cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

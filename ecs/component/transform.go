package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Position cp.Vector
	Rotation float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()

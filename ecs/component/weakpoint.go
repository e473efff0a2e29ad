package component

// WeakpointTag marks the body of a destructible weakpoint. Health mirrors the
// owning encounter.Weakpoint for renderers.
type WeakpointTag struct {
	Slot   int
	Health int
	Extra  bool
	Dying  bool
}

var WeakpointTagComponent = NewComponent[WeakpointTag]()

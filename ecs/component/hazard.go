package component

// HazardProp marks an area that damages the player on overlap while Armed.
// Bounds are centered on Transform.
type HazardProp struct {
	Width  float64
	Height float64
	Group  string
	Armed  bool
}

var HazardPropComponent = NewComponent[HazardProp]()

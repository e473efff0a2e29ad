package component

// Collider is a circle overlap volume. Disabled colliders are skipped by hit
// queries.
type Collider struct {
	Radius  float64
	Enabled bool
}

var ColliderComponent = NewComponent[Collider]()

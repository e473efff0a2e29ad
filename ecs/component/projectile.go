package component

// Projectile is a transient hostile shot. BreakSound plays when the
// projectile is broken by a registry flush instead of expiring.
type Projectile struct {
	Damage     int
	Radius     float64
	BreakSound string
	Broken     bool
}

var ProjectileComponent = NewComponent[Projectile]()

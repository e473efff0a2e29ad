package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

const defaultProjectileLifetime = 6.0

type ProjectileConfig struct {
	Owner      string
	Position   cp.Vector
	Radius     float64
	Damage     int
	Lifetime   float64
	BreakSound string
}

// NewProjectile builds a stationary projectile. Callers register it before
// launching it.
func NewProjectile(w *ecs.World, cfg ProjectileConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: cfg.Position, Scale: 1}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	radius := cfg.Radius
	if radius <= 0 {
		radius = 8
	}
	damage := cfg.Damage
	if damage <= 0 {
		damage = 1
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage:     damage,
		Radius:     radius,
		BreakSound: cfg.BreakSound,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Enabled: true}); err != nil {
		return 0, fmt.Errorf("projectile: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Boss: cfg.Owner}); err != nil {
		return 0, fmt.Errorf("projectile: add owner: %w", err)
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = defaultProjectileLifetime
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: lifetime}); err != nil {
		return 0, fmt.Errorf("projectile: add ttl: %w", err)
	}

	return e, nil
}

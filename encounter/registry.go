package encounter

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// Variant is the closed set of things the registry knows how to clear.
type Variant int

const (
	VariantProjectile Variant = iota
	VariantWeakpoint
	VariantHazardProp
)

func (v Variant) String() string {
	switch v {
	case VariantProjectile:
		return "projectile"
	case VariantWeakpoint:
		return "weakpoint"
	case VariantHazardProp:
		return "hazard"
	default:
		return "unknown"
	}
}

// Handle is a registered transient entity.
type Handle struct {
	Entity  ecs.Entity
	Variant Variant
	Owner   string

	weakpoint *Weakpoint
}

func ProjectileHandle(e ecs.Entity, owner string) Handle {
	return Handle{Entity: e, Variant: VariantProjectile, Owner: owner}
}

func HazardHandle(e ecs.Entity, owner string) Handle {
	return Handle{Entity: e, Variant: VariantHazardProp, Owner: owner}
}

func WeakpointHandle(wp *Weakpoint) Handle {
	return Handle{Entity: wp.Entity(), Variant: VariantWeakpoint, Owner: wp.Owner(), weakpoint: wp}
}

// Registry tracks every transient hostile entity spawned during a phase and
// is the only place that tears them down in bulk.
type Registry struct {
	w       *ecs.World
	audio   Audio
	handles []Handle
	index   map[ecs.Entity]int
}

func NewRegistry(w *ecs.World, audio Audio) *Registry {
	return &Registry{w: w, audio: audio, index: make(map[ecs.Entity]int)}
}

// Add registers h. Registering the same entity twice keeps the first handle.
func (r *Registry) Add(h Handle) {
	if r == nil || !h.Entity.Valid() {
		return
	}
	if _, ok := r.index[h.Entity]; ok {
		return
	}
	r.index[h.Entity] = len(r.handles)
	r.handles = append(r.handles, h)
}

// Remove forgets e without touching the entity.
func (r *Registry) Remove(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	idx, ok := r.index[e]
	if !ok {
		return false
	}
	copy(r.handles[idx:], r.handles[idx+1:])
	r.handles = r.handles[:len(r.handles)-1]
	delete(r.index, e)
	for i := idx; i < len(r.handles); i++ {
		r.index[r.handles[i].Entity] = i
	}
	return true
}

func (r *Registry) Contains(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[e]
	return ok
}

// Len counts registered handles whose entity is still alive.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, h := range r.handles {
		if ecs.IsAlive(r.w, h.Entity) {
			n++
		}
	}
	return n
}

// Handles returns a snapshot in registration order.
func (r *Registry) Handles() []Handle {
	if r == nil {
		return nil
	}
	return append([]Handle(nil), r.handles...)
}

// Prune drops handles whose entity died on its own, such as a projectile
// whose TTL ran out.
func (r *Registry) Prune() int {
	if r == nil {
		return 0
	}
	dropped := 0
	for _, h := range r.Handles() {
		if !ecs.IsAlive(r.w, h.Entity) {
			r.Remove(h.Entity)
			dropped++
		}
	}
	return dropped
}

// ClearAll tears down every registered entity.
func (r *Registry) ClearAll() int {
	return r.clear(func(Handle) bool { return true })
}

// ClearOwner tears down the entities spawned by owner.
func (r *Registry) ClearOwner(owner string) int {
	return r.clear(func(h Handle) bool { return h.Owner == owner })
}

func (r *Registry) clear(match func(Handle) bool) int {
	if r == nil {
		return 0
	}
	var cleared []Handle
	kept := r.handles[:0]
	for _, h := range r.handles {
		if match(h) {
			cleared = append(cleared, h)
			continue
		}
		kept = append(kept, h)
	}
	r.handles = kept
	r.index = make(map[ecs.Entity]int, len(kept))
	for i, h := range kept {
		r.index[h.Entity] = i
	}

	for _, h := range cleared {
		r.onRegistryClear(h)
	}
	return len(cleared)
}

func (r *Registry) onRegistryClear(h Handle) {
	switch h.Variant {
	case VariantWeakpoint:
		if h.weakpoint != nil {
			h.weakpoint.Remove()
			return
		}
	case VariantProjectile:
		if p, ok := ecs.Get(r.w, h.Entity, component.ProjectileComponent.Kind()); ok {
			p.Broken = true
			if r.audio != nil && p.BreakSound != "" {
				r.audio.PlaySound(p.BreakSound, 0.5, 1, false)
			}
		}
	case VariantHazardProp:
		if hz, ok := ecs.Get(r.w, h.Entity, component.HazardPropComponent.Kind()); ok {
			hz.Armed = false
		}
	}
	ecs.DestroyEntity(r.w, h.Entity)
}

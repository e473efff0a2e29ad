package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		anim.Time += dt
		if clip, ok := anim.Clips[anim.Current]; ok && clip.Loop && clip.Length > 0 {
			for anim.Time >= clip.Length {
				anim.Time -= clip.Length
			}
		}

		if anim.Blend >= 1 {
			return
		}
		if anim.BlendTime <= 0 {
			anim.Blend = 1
			return
		}
		anim.Blend += dt / anim.BlendTime
		if anim.Blend > 1 {
			anim.Blend = 1
		}
	})
}

// Animator cross-fades the animation state of a single entity.
type Animator struct {
	w *ecs.World
	e ecs.Entity
}

func NewAnimator(w *ecs.World, e ecs.Entity) *Animator {
	return &Animator{w: w, e: e}
}

func (a *Animator) CrossFade(state string, blend float64) {
	if a == nil {
		return
	}
	anim, ok := ecs.Get(a.w, a.e, component.AnimationComponent.Kind())
	if !ok || anim.Current == state {
		return
	}
	anim.Previous = anim.Current
	anim.Current = state
	anim.Time = 0
	anim.Blend = 0
	anim.BlendTime = blend
}

// ClipLength is the authored length of state, or zero when unknown.
func (a *Animator) ClipLength(state string) float64 {
	if a == nil {
		return 0
	}
	anim, ok := ecs.Get(a.w, a.e, component.AnimationComponent.Kind())
	if !ok {
		return 0
	}
	return anim.Clips[state].Length
}

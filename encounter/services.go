package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
)

// Boss is the contract every boss controller offers the sequencer.
type Boss interface {
	StartBoss(sub SubPhase)
	PhaseEnded()
}

// TransitionGate is implemented by bosses that can hold off a phase change,
// for example while a transformation is still playing.
type TransitionGate interface {
	CanTransition() bool
}

// Progression is the side of the sequencer that bosses and gates drive.
type Progression interface {
	Advance() error
	Current() (Phase, SubPhase)
}

type Camera interface {
	Shake(intensity, duration float64)
	SmoothShake(intensity, duration float64)
}

type Audio interface {
	PlaySound(clip string, volume, pitch float64, interrupt bool)
}

type Animator interface {
	CrossFade(state string, blend float64)
	ClipLength(state string) float64
}

// Toggle switches a camera, an arena, or a player control set.
type Toggle interface {
	SetActive(active bool)
}

// Mover releases a registered entity for independent movement.
type Mover interface {
	Launch(e ecs.Entity, velocity cp.Vector)
}

// Placer moves the player to a phase spawn point.
type Placer interface {
	Place(point cp.Vector)
}

// Tracker reports where the player is.
type Tracker interface {
	Position() cp.Vector
}

// Services bundles the collaborators handed to controllers. Any field may
// be nil, in which case the matching effect is skipped.
type Services struct {
	Camera   Camera
	Audio    Audio
	Animator Animator
	Mover    Mover
	Player   Tracker
}

func (s Services) shake(intensity, duration float64) {
	if s.Camera != nil {
		s.Camera.Shake(intensity, duration)
	}
}

func (s Services) play(clip string, volume, pitch float64) {
	if s.Audio != nil && clip != "" {
		s.Audio.PlaySound(clip, volume, pitch, false)
	}
}

func (s Services) crossFade(state string, blend float64) {
	if s.Animator != nil && state != "" {
		s.Animator.CrossFade(state, blend)
	}
}

func setActive(t Toggle, active bool) {
	if t != nil {
		t.SetActive(active)
	}
}

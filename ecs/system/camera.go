package system

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

const smoothShakeFrequency = 9.0

// CameraSystem turns shake requests on active cameras into a running shake
// and advances the shake offset each frame.
type CameraSystem struct {
	rng *rand.Rand
}

func NewCameraSystem(seed int64) *CameraSystem {
	return &CameraSystem{rng: rand.New(rand.NewSource(seed))}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.CameraShakeRequestComponent.Kind(), func(e ecs.Entity, cam *component.Camera, req *component.CameraShakeRequest) {
		_ = ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
		if !cam.Active || req.Duration <= 0 {
			return
		}
		// A weaker request never cuts a stronger shake short.
		if cur, ok := ecs.Get(w, e, component.CameraShakeComponent.Kind()); ok && cur.Remaining > 0 && cur.Intensity > req.Intensity {
			return
		}
		_ = ecs.Add(w, e, component.CameraShakeComponent.Kind(), &component.CameraShake{
			Remaining: req.Duration,
			Duration:  req.Duration,
			Intensity: req.Intensity,
			Smooth:    req.Smooth,
		})
	})

	dt := w.Delta()
	ecs.ForEach(w, component.CameraShakeComponent.Kind(), func(e ecs.Entity, shake *component.CameraShake) {
		shake.Remaining -= dt
		if shake.Remaining <= 0 {
			_ = ecs.Remove(w, e, component.CameraShakeComponent.Kind())
			return
		}
		progress := 1 - shake.Remaining/shake.Duration
		if shake.Smooth {
			envelope := math.Sin(progress * math.Pi)
			phase := progress * shake.Duration * smoothShakeFrequency
			shake.Offset = cp.Vector{X: math.Sin(phase), Y: math.Cos(phase * 1.3)}.Mult(shake.Intensity * envelope)
			return
		}
		falloff := 1 - progress
		shake.Offset = cp.Vector{X: cs.rng.Float64()*2 - 1, Y: cs.rng.Float64()*2 - 1}.Mult(shake.Intensity * falloff)
	})
}

// CameraShaker requests shakes on every active camera.
type CameraShaker struct {
	w *ecs.World
}

func NewCameraShaker(w *ecs.World) *CameraShaker {
	return &CameraShaker{w: w}
}

func (c *CameraShaker) Shake(intensity, duration float64) {
	c.request(intensity, duration, false)
}

func (c *CameraShaker) SmoothShake(intensity, duration float64) {
	c.request(intensity, duration, true)
}

func (c *CameraShaker) request(intensity, duration float64, smooth bool) {
	if c == nil {
		return
	}
	ecs.ForEach(c.w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if !cam.Active {
			return
		}
		_ = ecs.Add(c.w, e, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{
			Duration:  duration,
			Intensity: intensity,
			Smooth:    smooth,
		})
	})
}

// CameraToggle switches one camera entity on and off.
type CameraToggle struct {
	w *ecs.World
	e ecs.Entity
}

func NewCameraToggle(w *ecs.World, e ecs.Entity) *CameraToggle {
	return &CameraToggle{w: w, e: e}
}

func (c *CameraToggle) SetActive(active bool) {
	cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam.Active = active
	if !active {
		_ = ecs.Remove(c.w, c.e, component.CameraShakeComponent.Kind())
	}
}

// ActiveCamera returns the first active camera.
func ActiveCamera(w *ecs.World) (ecs.Entity, *component.Camera, bool) {
	var (
		found ecs.Entity
		out   *component.Camera
	)
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if out == nil && cam.Active {
			found, out = e, cam
		}
	})
	return found, out, out != nil
}

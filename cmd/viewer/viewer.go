package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/game"
	"golang.org/x/image/colornames"
)

const (
	tickDT      = 1.0 / 60
	playerSpeed = 360.0
)

type viewer struct {
	g      *game.Game
	paused bool
	status string
}

func newViewer(g *game.Game) *viewer {
	return &viewer{g: g}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.g.Restart()
		v.status = "restart"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := v.g.SkipPhase(); err != nil {
			v.status = err.Error()
		} else {
			v.status = "skip"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if v.g.HitWeakpoint() {
			v.status = "hit"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.g.Damage(50)
		v.status = "damage 50"
	}
	v.move()

	if !v.paused && !v.g.Done() {
		v.g.Update(tickDT)
	}
	return nil
}

// move only listens while the active phase's controls are on.
func (v *viewer) move() {
	phase, _ := v.g.Current()
	if ctl := v.g.Controls(phase); ctl == nil || !ctl.Active() {
		return
	}
	var d cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Y++
	}
	if d.LengthSq() > 0 {
		v.g.Player().Move(d.Normalize().Mult(playerSpeed * tickDT))
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	w := v.g.World()
	offset := cp.Vector{}
	if camE, _, ok := system.ActiveCamera(w); ok {
		if shake, ok := ecs.Get(w, camE, component.CameraShakeComponent.Kind()); ok {
			offset = shake.Offset
		}
	}
	at := func(p cp.Vector) (float32, float32) {
		return float32(p.X + offset.X), float32(p.Y + offset.Y)
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.HazardPropComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, hz *component.HazardProp) {
		if !hz.Armed {
			return
		}
		x, y := at(tr.Position.Sub(cp.Vector{X: hz.Width / 2, Y: hz.Height / 2}))
		vector.FillRect(screen, x, y, float32(hz.Width), float32(hz.Height), color.RGBA{R: 255, A: 48}, false)
		vector.StrokeRect(screen, x, y, float32(hz.Width), float32(hz.Height), 1, color.RGBA{R: 255, A: 200}, false)
	})

	bossColor := color.Color(colornames.Mediumpurple)
	if b, ok := v.g.ActiveBoss(); ok {
		if c := v.g.Spec().Boss(b.Phase()).Color.Color; c != nil {
			bossColor = c
		}
		if tr, ok := v.g.Transform(b.Body()); ok {
			x, y := at(tr.Position)
			vector.FillCircle(screen, x, y, 48, bossColor, true)
		}
		name := b.Name()
		ecs.ForEach3(w, component.TransformComponent.Kind(), component.BossPartComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, part *component.BossPart, col *component.Collider) {
			if part.Boss != name {
				return
			}
			x, y := at(tr.Position)
			clr := color.Color(colornames.Lightgrey)
			if !col.Enabled {
				clr = colornames.Dimgray
			}
			vector.StrokeCircle(screen, x, y, float32(col.Radius), 2, clr, true)
		})
	}

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.WeakpointTagComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, tag *component.WeakpointTag, col *component.Collider) {
		x, y := at(tr.Position)
		clr := color.Color(colornames.Gold)
		if tag.Extra {
			clr = colornames.Orange
		}
		if tag.Dying {
			clr = colornames.Gray
		}
		vector.FillCircle(screen, x, y, float32(col.Radius), clr, true)
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ProjectileComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, p *component.Projectile) {
		if p.Broken {
			return
		}
		x, y := at(tr.Position)
		vector.FillCircle(screen, x, y, float32(p.Radius), colornames.Crimson, true)
	})

	px, py := at(v.g.Player().Position())
	vector.FillCircle(screen, px, py, 10, colornames.Deepskyblue, true)

	ebitenutil.DebugPrint(screen, v.hud())
}

func (v *viewer) hud() string {
	phase, sub := v.g.Current()
	line := fmt.Sprintf("t=%.1f  %s %s  FPS: %.0f", v.g.Time(), phase, sub, ebiten.ActualFPS())
	if b, ok := v.g.ActiveBoss(); ok {
		gate := b.Gate()
		line += fmt.Sprintf("\n%s [%s] hp %d/%d armed=%t weakpoints=%d", b.Name(), b.State(), gate.Health(), gate.Total(), gate.Damageable(), len(b.Weakpoints()))
	}
	if v.g.Done() {
		line += "\nall phases cleared"
	}
	if v.paused {
		line += "\npaused"
	}
	if v.status != "" {
		line += "\n" + v.status
	}
	return line + "\n[S] skip  [R] restart  [space] hit  [D] damage  [P] pause  arrows move"
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	a := v.g.Arena()
	return int(a.X), int(a.Y)
}

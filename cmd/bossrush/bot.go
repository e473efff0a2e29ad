package main

import (
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/game"
)

type discardSink struct{}

func (discardSink) Play(component.SoundRequest) {}

// bot walks toward the nearest weakpoint and hits it on a fixed cadence.
type bot struct {
	every float64
	wait  float64
	speed float64
}

func newBot(every float64) *bot {
	return &bot{every: every, speed: 400}
}

func (b *bot) step(g *game.Game, dt float64) {
	if b.every <= 0 {
		return
	}
	boss, ok := g.ActiveBoss()
	if !ok {
		return
	}
	p := g.Player()
	for _, wp := range boss.Weakpoints() {
		tr, ok := g.Transform(wp.Entity())
		if !ok {
			continue
		}
		d := tr.Position.Sub(p.Position())
		if d.Length() > 1 {
			step := b.speed * dt
			if step > d.Length() {
				step = d.Length()
			}
			p.Move(d.Normalize().Mult(step))
		}
		break
	}

	b.wait -= dt
	if b.wait > 0 {
		return
	}
	b.wait = b.every
	g.HitWeakpoint()
}

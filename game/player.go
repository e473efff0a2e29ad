package game

import "github.com/jakecoffman/cp"

// Player is the tracked player position bosses aim at.
type Player struct {
	pos    cp.Vector
	placed int
}

func (p *Player) Position() cp.Vector { return p.pos }

// Place moves the player to a phase spawn point.
func (p *Player) Place(point cp.Vector) {
	p.pos = point
	p.placed++
}

func (p *Player) Move(delta cp.Vector) { p.pos = p.pos.Add(delta) }

// Placed counts spawn placements.
func (p *Player) Placed() int { return p.placed }

// ControlSet is the player control scheme of one phase. Only the active
// phase's set accepts input.
type ControlSet struct {
	Name   string
	active bool
}

func (c *ControlSet) SetActive(active bool) { c.active = active }
func (c *ControlSet) Active() bool { return c.active }

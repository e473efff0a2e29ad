package boss

import (
	"fmt"
	"log"

	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/routine"
)

func (c *Controller) startTutorial() {
	need := c.cfg.Weakpoints.TutorialRequired
	for _, slot := range c.shuffledFreeSlots(need) {
		if _, err := c.spawnWeakpoint(slot, false); err != nil {
			log.Printf("boss: %s tutorial weakpoint: %v", c.cfg.Name, err)
		}
	}

	tok := c.token
	c.sched.Run(tok, routine.Until(func() bool { return c.destroyed >= need }), func() {
		log.Printf("boss: %s tutorial cleared", c.cfg.Name)
		if c.progress == nil {
			return
		}
		if err := c.progress.Advance(); err != nil {
			log.Printf("boss: %s tutorial advance: %v", c.cfg.Name, err)
		}
	})
}

func (c *Controller) spawnFightWeakpoints() {
	for _, slot := range c.shuffledFreeSlots(c.cfg.Weakpoints.Required) {
		if _, err := c.spawnWeakpoint(slot, false); err != nil {
			log.Printf("boss: %s weakpoint: %v", c.cfg.Name, err)
		}
	}
}

// spawnWeakpoint spawns at slot. Tutorial and extra weakpoints never expire.
func (c *Controller) spawnWeakpoint(slot int, extra bool) (*encounter.Weakpoint, error) {
	pol := c.cfg.Weakpoints
	if slot < 0 || slot >= len(pol.Slots) {
		return nil, fmt.Errorf("slot %d out of range", slot)
	}
	wp, err := encounter.NewWeakpoint(c.w, c.sched, c.token, c.reg, c.svc, encounter.WeakpointConfig{
		Owner:        c.cfg.Name,
		Slot:         slot,
		Position:     pol.Slots[slot],
		Radius:       pol.Radius,
		Health:       pol.Health,
		Lifetime:     pol.Lifetime,
		Target:       c.cfg.Position,
		DeliveryTime: pol.DeliveryTime,
		HitSound:     pol.HitSound,
		DeathSound:   pol.DeathSound,
		HitAnim:      "hurt",
		Extra:        extra,
	})
	if err != nil {
		return nil, err
	}
	if extra || c.sub == encounter.Tutorial {
		if err := wp.DisableLifetime(); err != nil {
			return nil, err
		}
	}

	tok := c.token
	wp.OnDeath(func(wp *encounter.Weakpoint) { c.weakpointDestroyed(tok, wp) })
	wp.OnExpire(func(wp *encounter.Weakpoint) { c.weakpointExpired(tok, wp) })
	c.weakpoints = append(c.weakpoints, wp)
	return wp, nil
}

func (c *Controller) forget(wp *encounter.Weakpoint) {
	for i, cur := range c.weakpoints {
		if cur == wp {
			c.weakpoints = append(c.weakpoints[:i], c.weakpoints[i+1:]...)
			return
		}
	}
}

// weakpointDestroyed counts a destruction, schedules replacements, and
// delivers the crit last since it may tear this activation down.
func (c *Controller) weakpointDestroyed(tok *routine.Token, wp *encounter.Weakpoint) {
	if tok.Revoked() {
		return
	}
	c.forget(wp)
	c.destroyed++
	if wp == c.extra {
		c.extra = nil
	}
	if c.sub == encounter.Tutorial {
		return
	}

	pol := c.cfg.Weakpoints
	if !wp.Extra() {
		c.sched.After(tok, pol.RespawnDelay, c.respawnRegular)
	}
	if c.destroyed >= pol.Required {
		c.sched.After(tok, pol.ExtraDelay, c.spawnExtra)
	}
	c.gate.DealCritDamage()
}

func (c *Controller) weakpointExpired(tok *routine.Token, wp *encounter.Weakpoint) {
	if tok.Revoked() {
		return
	}
	c.forget(wp)
	c.sched.After(tok, c.cfg.Weakpoints.RespawnDelay, c.respawnRegular)
}

func (c *Controller) respawnRegular() {
	regular := 0
	for _, wp := range c.weakpoints {
		if !wp.Extra() {
			regular++
		}
	}
	if regular >= c.cfg.Weakpoints.Required {
		return
	}
	slots := c.shuffledFreeSlots(1)
	if len(slots) == 0 {
		return
	}
	if _, err := c.spawnWeakpoint(slots[0], false); err != nil {
		log.Printf("boss: %s respawn weakpoint: %v", c.cfg.Name, err)
	}
}

func (c *Controller) spawnExtra() {
	if c.extra != nil {
		log.Printf("boss: %s extra weakpoint: %v", c.cfg.Name, encounter.ErrDuplicateExtraWeakpoint)
		return
	}
	slots := c.shuffledFreeSlots(1)
	if len(slots) == 0 {
		return
	}
	wp, err := c.spawnWeakpoint(slots[0], true)
	if err != nil {
		log.Printf("boss: %s extra weakpoint: %v", c.cfg.Name, err)
		return
	}
	c.extra = wp
}

// shuffledFreeSlots returns up to n random slots with no live weakpoint.
func (c *Controller) shuffledFreeSlots(n int) []int {
	taken := make(map[int]bool, len(c.weakpoints))
	for _, wp := range c.weakpoints {
		taken[wp.Slot()] = true
	}
	var free []int
	for i := range c.cfg.Weakpoints.Slots {
		if !taken[i] {
			free = append(free, i)
		}
	}
	c.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	if n < len(free) {
		free = free[:n]
	}
	return free
}

// Weakpoints returns the controller's live weakpoints.
func (c *Controller) Weakpoints() []*encounter.Weakpoint {
	out := make([]*encounter.Weakpoint, 0, len(c.weakpoints))
	for _, wp := range c.weakpoints {
		if wp.Alive() {
			out = append(out, wp)
		}
	}
	return out
}

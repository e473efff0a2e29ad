// Package boss holds the boss controller state machine and its five
// variants. A controller is activated by the sequencer through StartBoss and
// torn down through PhaseEnded.
package boss

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/looplab/fsm"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/routine"
)

const (
	stateTornDown = "torn_down"
	stateTutorial = "tutorial"
	stateIdle     = "idle"

	eventActivateTutorial = "activate_tutorial"
	eventActivateFight    = "activate_fight"
	eventFinish           = "finish"
	eventTeardown         = "teardown"
)

// Attack is one top-level attack routine. Run builds a fresh routine for
// each execution; pattern bosses receive the pattern entry that chose it.
type Attack struct {
	Name string
	Run  func(p Pattern) routine.Step
}

// Controller runs one boss: attack selection, weakpoint policy and
// teardown. Variants embed it and register their attacks.
type Controller struct {
	cfg   Config
	w     *ecs.World
	sched *routine.Scheduler
	reg   *encounter.Registry
	svc   encounter.Services

	body  ecs.Entity
	parts map[string]ecs.Entity

	gate     *encounter.Gate
	progress encounter.Progression
	scaler   *encounter.DifficultyScaler
	params   encounter.Params
	rng      *rand.Rand

	attacks  []Attack
	byName   map[string]Attack
	patterns *encounter.PatternQueue[Pattern]

	state      *fsm.FSM
	token      *routine.Token
	sub        encounter.SubPhase
	current    string
	attacksRun int

	destroyed  int
	weakpoints []*encounter.Weakpoint
	extra      *encounter.Weakpoint

	onTeardown []func()
}

func newController(cfg Config, deps Deps) (*Controller, error) {
	cfg = cfg.withDefaults()
	if deps.World == nil || deps.Scheduler == nil || deps.Registry == nil {
		return nil, fmt.Errorf("boss %s: missing world, scheduler or registry", cfg.Name)
	}

	clips := make(map[string]component.AnimationClip, len(cfg.Clips))
	for name, length := range cfg.Clips {
		clips[name] = component.AnimationClip{Length: length, Loop: name == "idle"}
	}
	body, err := entity.NewBossBody(deps.World, entity.BossConfig{Name: cfg.Name, Position: cfg.Position, Clips: clips})
	if err != nil {
		return nil, fmt.Errorf("boss %s: %w", cfg.Name, err)
	}

	c := &Controller{
		cfg:    cfg,
		w:      deps.World,
		sched:  deps.Scheduler,
		reg:    deps.Registry,
		svc:    deps.Services,
		body:   body,
		parts:  make(map[string]ecs.Entity, len(cfg.Parts)),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		byName: make(map[string]Attack),
	}
	if c.svc.Animator == nil {
		c.svc.Animator = system.NewAnimator(deps.World, body)
	}
	for _, p := range cfg.Parts {
		e, err := entity.NewBossPart(deps.World, cfg.Name, p.Name, cfg.Position.Add(p.Offset), p.Radius)
		if err != nil {
			return nil, fmt.Errorf("boss %s: %w", cfg.Name, err)
		}
		c.parts[p.Name] = e
	}

	c.gate = encounter.NewGate(cfg.Name, cfg.Health, cfg.HealthPhases, deps.Registry, nil)
	if deps.Observer != nil {
		c.gate.SetObserver(deps.Observer, deps.Scheduler.Now)
	}
	c.scaler = encounter.NewDifficultyScaler(cfg.Profile)
	c.params = c.scaler.Params()
	return c, nil
}

func (c *Controller) addAttack(a Attack) {
	if _, dup := c.byName[a.Name]; dup || a.Run == nil {
		return
	}
	c.attacks = append(c.attacks, a)
	c.byName[a.Name] = a
}

// finalize builds the state machine once every attack is registered.
func (c *Controller) finalize() error {
	for _, src := range c.cfg.Scripts {
		s, err := CompileScript(src.Name, src.Source)
		if err != nil {
			return fmt.Errorf("boss %s: %w", c.cfg.Name, err)
		}
		c.addAttack(Attack{Name: src.Name, Run: c.scripted(s)})
	}
	if len(c.attacks) == 0 {
		return fmt.Errorf("boss %s: no attacks", c.cfg.Name)
	}

	names := make([]string, 0, len(c.attacks))
	events := fsm.Events{
		{Name: eventActivateTutorial, Src: []string{stateTornDown}, Dst: stateTutorial},
		{Name: eventActivateFight, Src: []string{stateTornDown}, Dst: stateIdle},
	}
	for _, a := range c.attacks {
		switch a.Name {
		case stateTornDown, stateTutorial, stateIdle:
			return fmt.Errorf("boss %s: attack name %q is reserved", c.cfg.Name, a.Name)
		}
		names = append(names, a.Name)
		events = append(events, fsm.EventDesc{Name: "attack_" + a.Name, Src: []string{stateIdle}, Dst: a.Name})
	}
	events = append(events,
		fsm.EventDesc{Name: eventFinish, Src: names, Dst: stateIdle},
		fsm.EventDesc{Name: eventTeardown, Src: append([]string{stateTutorial, stateIdle}, names...), Dst: stateTornDown},
	)
	c.state = fsm.NewFSM(stateTornDown, events, fsm.Callbacks{})

	if c.cfg.Selection == SelectPattern {
		patterns := c.cfg.Patterns
		if len(patterns) == 0 {
			for _, a := range c.attacks {
				patterns = append(patterns, Pattern{Name: a.Name, Attack: a.Name})
			}
		}
		c.patterns = encounter.NewPatternQueue(c.rng, patterns...)
	}
	return nil
}

func (c *Controller) event(name string) {
	if err := c.state.Event(context.Background(), name); err != nil {
		log.Printf("boss: %s %s from %s: %v", c.cfg.Name, name, c.state.Current(), err)
	}
}

// SetProgression wires the controller and its gate to the sequencer.
func (c *Controller) SetProgression(p encounter.Progression) {
	c.progress = p
	c.gate.SetProgression(p)
}

func (c *Controller) Name() string { return c.cfg.Name }
func (c *Controller) Phase() encounter.Phase { return c.cfg.Phase }
func (c *Controller) Gate() *encounter.Gate { return c.gate }
func (c *Controller) State() string { return c.state.Current() }
func (c *Controller) SubPhase() encounter.SubPhase { return c.sub }
func (c *Controller) Params() encounter.Params { return c.params }
func (c *Controller) Body() ecs.Entity { return c.body }
func (c *Controller) Extra() *encounter.Weakpoint { return c.extra }
func (c *Controller) Destroyed() int { return c.destroyed }
func (c *Controller) AttacksRun() int { return c.attacksRun }
func (c *Controller) CurrentAttack() string { return c.current }
func (c *Controller) Policy() WeakpointPolicy { return c.cfg.Weakpoints }
func (c *Controller) Token() *routine.Token { return c.token }
func (c *Controller) Services() encounter.Services { return c.svc }
func (c *Controller) Registry() *encounter.Registry { return c.reg }
func (c *Controller) Scheduler() *routine.Scheduler { return c.sched }
func (c *Controller) World() *ecs.World { return c.w }
func (c *Controller) TornDown() bool { return c.state.Is(stateTornDown) }

// AttackNames lists the registered attacks in sorted order.
func (c *Controller) AttackNames() []string {
	out := make([]string, 0, len(c.attacks))
	for _, a := range c.attacks {
		out = append(out, a.Name)
	}
	sort.Strings(out)
	return out
}

// StartBoss activates the controller at sub. Any earlier activation is torn
// down first.
func (c *Controller) StartBoss(sub encounter.SubPhase) {
	c.teardown()

	c.token = routine.NewToken(c.cfg.Name)
	c.sub = sub
	c.destroyed = 0
	c.attacksRun = 0
	c.extra = nil
	c.weakpoints = nil
	c.params = c.scaler.Apply(sub)
	if c.patterns != nil {
		c.patterns.Reset()
	}

	if sub == encounter.Tutorial {
		c.gate.Reset()
		c.event(eventActivateTutorial)
		log.Printf("boss: %s tutorial, destroy %d weakpoints", c.cfg.Name, c.cfg.Weakpoints.TutorialRequired)
		c.startTutorial()
		return
	}

	c.event(eventActivateFight)
	c.gate.Enter(int(sub - encounter.Easy))
	c.gate.ToggleDamageable(true)
	log.Printf("boss: %s fight at %s (%.0f%%)", c.cfg.Name, sub, c.params.Percentage)
	c.spawnFightWeakpoints()
	c.scheduleAttack(c.params.Duration("initial_cooldown"))
}

// PhaseEnded tears the controller down. It is safe to call repeatedly.
func (c *Controller) PhaseEnded() {
	wasActive := !c.state.Is(stateTornDown)
	c.teardown()
	if wasActive {
		log.Printf("boss: %s torn down", c.cfg.Name)
	}
}

func (c *Controller) teardown() {
	if c.token != nil {
		c.token.Revoke()
	}
	c.reg.ClearOwner(c.cfg.Name)
	c.restoreParts()
	for _, fn := range c.onTeardown {
		fn()
	}
	c.gate.ToggleDamageable(false)
	c.extra = nil
	c.weakpoints = nil
	c.current = ""
	if !c.state.Is(stateTornDown) {
		c.event(eventTeardown)
	}
}

// minAttackDelay keeps an instant attack with no cooldown from spinning
// inside a single scheduler advance.
const minAttackDelay = 1.0 / 60

func (c *Controller) scheduleAttack(delay float64) {
	if delay < minAttackDelay {
		delay = minAttackDelay
	}
	tok := c.token
	c.sched.After(tok, delay, func() { c.beginAttack(tok) })
}

func (c *Controller) pick() (Attack, Pattern, bool) {
	if c.patterns != nil {
		p, ok := c.patterns.Next()
		if !ok {
			return Attack{}, Pattern{}, false
		}
		a, ok := c.byName[p.Attack]
		if !ok {
			log.Printf("boss: %s pattern %q names unknown attack %q", c.cfg.Name, p.Name, p.Attack)
			return Attack{}, Pattern{}, false
		}
		return a, p, true
	}
	return c.attacks[c.rng.Intn(len(c.attacks))], Pattern{}, true
}

func (c *Controller) beginAttack(tok *routine.Token) {
	if tok.Revoked() || !c.state.Is(stateIdle) {
		return
	}
	a, p, ok := c.pick()
	if !ok {
		c.scheduleAttack(c.params.Duration("attack_cooldown"))
		return
	}
	if err := c.state.Event(context.Background(), "attack_"+a.Name); err != nil {
		log.Printf("boss: %s start %s: %v", c.cfg.Name, a.Name, err)
		return
	}
	step := a.Run(p)
	if step == nil {
		step = routine.Wait(0)
	}
	c.current = a.Name
	c.attacksRun++
	c.sched.Run(tok, step, func() {
		c.current = ""
		c.event(eventFinish)
		c.scheduleAttack(c.params.Duration("attack_cooldown"))
	})
}

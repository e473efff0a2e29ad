package encounter

import (
	"fmt"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/entity"
)

func TestGateSingleCrossingPerCall(t *testing.T) {
	_, reg, _ := worldWithRegistry()
	prog := &fakeProgression{sub: Easy}
	g := NewGate("dj", 2000, 3, reg, prog)
	g.ToggleDamageable(true)

	if !g.DealDamage(700) {
		t.Fatalf("expected 700 damage to cross the first threshold")
	}
	if g.Health() != 1300 {
		t.Fatalf("expected 1300 health, got %d", g.Health())
	}
	if g.DealDamage(0) {
		t.Fatalf("follow-up zero damage must not cross again")
	}
	if prog.advances != 1 {
		t.Fatalf("expected exactly one advance, got %d", prog.advances)
	}
	if g.Damageable() {
		t.Fatalf("crossing should disarm the gate")
	}
}

func TestGateUnarmedIgnoresDamage(t *testing.T) {
	_, reg, _ := worldWithRegistry()
	prog := &fakeProgression{}
	g := NewGate("dj", 100, 2, reg, prog)

	if g.DealDamage(100) || g.DealCritDamage() {
		t.Fatalf("unarmed gate must ignore damage")
	}
	if g.Health() != 100 || prog.advances != 0 {
		t.Fatalf("unarmed gate changed state: health=%d advances=%d", g.Health(), prog.advances)
	}
}

func TestGateThreeCritsClearATier(t *testing.T) {
	tests := []struct {
		total  int
		phases int
	}{
		{2000, 2},
		{2000, 3},
		{1000, 3},
		{999, 3},
		{10, 1},
		{601, 2},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_over_%d", tc.total, tc.phases), func(t *testing.T) {
			_, reg, _ := worldWithRegistry()
			prog := &fakeProgression{sub: Easy}
			g := NewGate("boss", tc.total, tc.phases, reg, prog)

			for tier := 0; tier < tc.phases; tier++ {
				crossedAt := 0
				for crit := 1; crit <= 3; crit++ {
					g.ToggleDamageable(true)
					if g.DealCritDamage() {
						crossedAt = crit
						break
					}
				}
				if crossedAt == 0 {
					t.Fatalf("total=%d phases=%d tier %d: three crits did not clear the tier (health %d, threshold %.2f)",
						tc.total, tc.phases, tier, g.Health(), g.Threshold())
				}
			}
			if prog.advances != tc.phases {
				t.Fatalf("expected %d advances, got %d", tc.phases, prog.advances)
			}
		})
	}
}

func TestGateCritDamageRoundsUp(t *testing.T) {
	tests := []struct {
		total, phases, want int
	}{
		{2000, 3, 223},
		{2000, 2, 334},
		{999, 3, 111},
		{1, 5, 1},
	}
	for _, tc := range tests {
		g := NewGate("boss", tc.total, tc.phases, nil, nil)
		if got := g.CritDamage(); got != tc.want {
			t.Fatalf("total=%d phases=%d: expected %d, got %d", tc.total, tc.phases, tc.want, got)
		}
	}
}

func TestGateSkipPhase(t *testing.T) {
	t.Run("tutorial_promotes", func(t *testing.T) {
		_, reg, _ := worldWithRegistry()
		prog := &fakeProgression{sub: Tutorial}
		g := NewGate("dj", 1000, 2, reg, prog)
		if err := g.SkipPhase(); err != nil {
			t.Fatal(err)
		}
		if prog.advances != 1 || g.Health() != 1000 || g.Crossed() != 0 {
			t.Fatalf("expected a plain promotion, got advances=%d health=%d crossed=%d", prog.advances, g.Health(), g.Crossed())
		}
	})

	t.Run("fight_forces_crossing", func(t *testing.T) {
		_, reg, _ := worldWithRegistry()
		prog := &fakeProgression{sub: Easy}
		g := NewGate("dj", 1000, 2, reg, prog)
		if err := g.SkipPhase(); err != nil {
			t.Fatal(err)
		}
		if prog.advances != 1 || g.Crossed() != 1 {
			t.Fatalf("expected one forced crossing, got advances=%d crossed=%d", prog.advances, g.Crossed())
		}
		if g.Health() > 500 {
			t.Fatalf("expected health at or below 500, got %d", g.Health())
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		_, reg, _ := worldWithRegistry()
		prog := &fakeProgression{sub: Normal}
		g := NewGate("dj", 10, 1, reg, prog)
		_ = g.SkipPhase()
		_ = g.SkipPhase()
		if prog.advances != 1 {
			t.Fatalf("expected a single advance, got %d", prog.advances)
		}
	})
}

func TestGateCrossingFlushesRegistry(t *testing.T) {
	w, reg, _ := worldWithRegistry()
	e, err := entity.NewProjectile(w, entity.ProjectileConfig{Owner: "dj", Position: cp.Vector{X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	reg.Add(ProjectileHandle(e, "dj"))

	g := NewGate("dj", 100, 2, reg, &fakeProgression{sub: Easy})
	g.ToggleDamageable(true)
	g.DealDamage(60)

	if reg.Len() != 0 || ecs.IsAlive(w, e) {
		t.Fatalf("expected projectile cleared by the crossing")
	}
}

func TestGateEnterAlignsTier(t *testing.T) {
	tests := []struct {
		name       string
		health     int
		crossed    int
		enter      int
		wantHealth int
	}{
		{"fresh easy", 100, 0, 0, 100},
		{"normal after easy crossing", 48, 1, 1, 48},
		{"normal caps health", 100, 0, 1, 50},
		{"crossing taken while held", 0, 2, 1, 50},
		{"clamped", 100, 0, 5, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reg, _ := worldWithRegistry()
			g := NewGate("dj", 100, 2, reg, &fakeProgression{})
			g.health = tt.health
			g.crossed = tt.crossed
			g.Enter(tt.enter)
			if g.Health() != tt.wantHealth {
				t.Fatalf("health = %d, want %d", g.Health(), tt.wantHealth)
			}
			want := tt.enter
			if want > 1 {
				want = 1
			}
			if g.Crossed() != want {
				t.Fatalf("crossed = %d, want %d", g.Crossed(), want)
			}
		})
	}
}

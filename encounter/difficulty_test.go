package encounter

import (
	"math"
	"testing"
)

func testProfile() DifficultyProfile {
	return DifficultyProfile{
		TutorialPercentage: 50,
		EasyPercentage:     75,
		NormalPercentage:   100,
		Speeds:             map[string]float64{"projectile_speed": 300},
		Durations:          map[string]float64{"attack_cooldown": 2},
		Counts:             map[string]int{"volley": 6, "single": 1},
	}
}

func TestDifficultyFormula(t *testing.T) {
	tests := []struct {
		tier     SubPhase
		speed    float64
		cooldown float64
		volley   int
		single   int
	}{
		{Tutorial, 150, 2 * 200.0 / 150.0, 3, 1},
		{Easy, 225, 2 * 200.0 / 175.0, 5, 1},
		{Normal, 300, 2, 6, 1},
	}

	for _, tc := range tests {
		t.Run(tc.tier.String(), func(t *testing.T) {
			d := NewDifficultyScaler(testProfile())
			p := d.Apply(tc.tier)
			if math.Abs(p.Speed("projectile_speed")-tc.speed) > 1e-9 {
				t.Fatalf("speed: expected %v, got %v", tc.speed, p.Speed("projectile_speed"))
			}
			if math.Abs(p.Duration("attack_cooldown")-tc.cooldown) > 1e-9 {
				t.Fatalf("cooldown: expected %v, got %v", tc.cooldown, p.Duration("attack_cooldown"))
			}
			if p.Count("volley") != tc.volley || p.Count("single") != tc.single {
				t.Fatalf("counts: expected %d/%d, got %d/%d", tc.volley, tc.single, p.Count("volley"), p.Count("single"))
			}
		})
	}
}

func TestDifficultyIsIdempotent(t *testing.T) {
	d := NewDifficultyScaler(testProfile())
	first := d.Apply(Easy)
	d.Apply(Tutorial)
	d.Apply(Normal)
	second := d.Apply(Easy)
	third := d.Apply(Easy)

	if !first.Equal(second) || !second.Equal(third) {
		t.Fatalf("applying the same tier twice must give identical parameters")
	}
}

func TestDifficultyCopiesProfile(t *testing.T) {
	profile := testProfile()
	d := NewDifficultyScaler(profile)
	profile.Speeds["projectile_speed"] = 1
	if got := d.Apply(Normal).Speed("projectile_speed"); got != 300 {
		t.Fatalf("scaler must not alias caller maps, got %v", got)
	}
}

func TestScaleCountFloor(t *testing.T) {
	tests := []struct {
		base    int
		forward float64
		want    int
	}{
		{1, 0.5, 1},
		{0, 1, 1},
		{3, 0.5, 2},
		{4, 0.75, 3},
	}
	for _, tc := range tests {
		if got := ScaleCount(tc.base, tc.forward); got != tc.want {
			t.Fatalf("ScaleCount(%d, %v): expected %d, got %d", tc.base, tc.forward, tc.want, got)
		}
	}
}

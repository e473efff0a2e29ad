package encounter

import (
	"math"
	"sort"
)

// DifficultyProfile is the base tuning of one boss. Speeds and counts scale
// with the tier percentage; durations scale against it.
type DifficultyProfile struct {
	TutorialPercentage float64
	EasyPercentage     float64
	NormalPercentage   float64

	Speeds    map[string]float64
	Durations map[string]float64
	Counts    map[string]int
}

// Percentage is the tier percentage, with 50/75/100 when unset.
func (p DifficultyProfile) Percentage(sub SubPhase) float64 {
	pick := func(v, def float64) float64 {
		if v > 0 {
			return v
		}
		return def
	}
	switch sub {
	case Tutorial:
		return pick(p.TutorialPercentage, 50)
	case Easy:
		return pick(p.EasyPercentage, 75)
	default:
		return pick(p.NormalPercentage, 100)
	}
}

// Multipliers returns the forward multiplier p/100 and the inverse
// multiplier 200/(p+100).
func Multipliers(percentage float64) (forward, inverse float64) {
	return percentage / 100, 200 / (percentage + 100)
}

// ScaleCount applies the forward multiplier, rounding and flooring at one.
func ScaleCount(base int, forward float64) int {
	n := int(math.Round(float64(base) * forward))
	if n < 1 {
		return 1
	}
	return n
}

// Params is one derived parameter set.
type Params struct {
	Tier       SubPhase
	Percentage float64
	Forward    float64
	Inverse    float64

	speeds    map[string]float64
	durations map[string]float64
	counts    map[string]int
}

func (p Params) Speed(name string) float64 { return p.speeds[name] }
func (p Params) Duration(name string) float64 { return p.durations[name] }

// Count is the scaled count for name, or zero when the profile lacks it.
func (p Params) Count(name string) int { return p.counts[name] }

// Names lists every tunable in sorted order.
func (p Params) Names() []string {
	var out []string
	for k := range p.speeds {
		out = append(out, k)
	}
	for k := range p.durations {
		out = append(out, k)
	}
	for k := range p.counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two derived sets hold the same values.
func (p Params) Equal(o Params) bool {
	if p.Tier != o.Tier || p.Percentage != o.Percentage || len(p.speeds) != len(o.speeds) ||
		len(p.durations) != len(o.durations) || len(p.counts) != len(o.counts) {
		return false
	}
	for k, v := range p.speeds {
		if ov, ok := o.speeds[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range p.durations {
		if ov, ok := o.durations[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range p.counts {
		if ov, ok := o.counts[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// DifficultyScaler derives tier parameters from an immutable base profile.
// Applying a tier always starts from the base, never from the last result.
type DifficultyScaler struct {
	base    DifficultyProfile
	current Params
}

func NewDifficultyScaler(profile DifficultyProfile) *DifficultyScaler {
	base := profile
	base.Speeds = make(map[string]float64, len(profile.Speeds))
	for k, v := range profile.Speeds {
		base.Speeds[k] = v
	}
	base.Durations = make(map[string]float64, len(profile.Durations))
	for k, v := range profile.Durations {
		base.Durations[k] = v
	}
	base.Counts = make(map[string]int, len(profile.Counts))
	for k, v := range profile.Counts {
		base.Counts[k] = v
	}
	d := &DifficultyScaler{base: base}
	d.Apply(Normal)
	return d
}

func (d *DifficultyScaler) Apply(sub SubPhase) Params {
	pct := d.base.Percentage(sub)
	fwd, inv := Multipliers(pct)
	p := Params{
		Tier:       sub,
		Percentage: pct,
		Forward:    fwd,
		Inverse:    inv,
		speeds:     make(map[string]float64, len(d.base.Speeds)),
		durations:  make(map[string]float64, len(d.base.Durations)),
		counts:     make(map[string]int, len(d.base.Counts)),
	}
	for k, v := range d.base.Speeds {
		p.speeds[k] = v * fwd
	}
	for k, v := range d.base.Durations {
		p.durations[k] = v * inv
	}
	for k, v := range d.base.Counts {
		p.counts[k] = ScaleCount(v, fwd)
	}
	d.current = p
	return p
}

func (d *DifficultyScaler) Params() Params {
	return d.current
}
